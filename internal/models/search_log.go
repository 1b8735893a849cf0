package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Search outcomes stored in SearchLog.Outcome
const (
	OutcomeOK              = "ok"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeValidationError = "validation_error"
)

// StringList stores a string slice as a JSON array in a text column
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}

	return json.Unmarshal(bytes, a)
}

// SearchLog records one search forwarded through the gateway
type SearchLog struct {
	ID              uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	Query           string     `gorm:"size:255" json:"query"`
	Diet            string     `gorm:"size:64" json:"diet,omitempty"`
	Cuisine         string     `gorm:"size:64" json:"cuisine,omitempty"`
	DishType        string     `gorm:"size:64" json:"type,omitempty"`
	MaxReadyMinutes int        `json:"max_ready_time,omitempty"`
	Intolerances    StringList `gorm:"type:text;not null" json:"intolerances"`
	ResultLimit     int        `json:"number"`
	Outcome         string     `gorm:"size:32;not null;index" json:"outcome"`
	UpstreamStatus  int        `json:"upstream_status,omitempty"`
	LatencyMS       int64      `json:"latency_ms"`
	ClientHash      string     `gorm:"size:64;index" json:"-"`
}

// TableName returns the table name for the SearchLog model
func (SearchLog) TableName() string {
	return "search_logs"
}

// BeforeCreate assigns an id so the model does not depend on database uuid defaults
func (l *SearchLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// SearchLogFilters represents filters for listing search logs
type SearchLogFilters struct {
	Outcome string `json:"outcome,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}
