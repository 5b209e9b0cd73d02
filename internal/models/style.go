package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Alignment string

const (
	AlignmentTop    Alignment = "top"
	AlignmentMiddle Alignment = "middle"
	AlignmentBottom Alignment = "bottom"
)

// StyleSpec describes how burned subtitles should look. It is an immutable
// value object: the worker translates it, never mutates it. Colors are
// 6-hex-digit RGB strings without a leading '#'.
type StyleSpec struct {
	FontSize       int       `json:"font_size" db:"font_size" redis:"font_size" validate:"required,gt=0"`
	PrimaryColor   string    `json:"primary_color" db:"primary_color" redis:"primary_color" validate:"required"`
	OutlineColor   string    `json:"outline_color" db:"outline_color" redis:"outline_color" validate:"required"`
	OutlineWidth   float64   `json:"outline_width" db:"outline_width" redis:"outline_width" validate:"gte=0"`
	MarginVertical int       `json:"margin_vertical" db:"margin_vertical" redis:"margin_vertical" validate:"gte=0"`
	Alignment      Alignment `json:"alignment" db:"alignment" redis:"alignment" validate:"required,oneof=top middle bottom"`
	Bold           bool      `json:"bold" db:"bold" redis:"bold"`
	Italic         bool      `json:"italic" db:"italic" redis:"italic"`
}

// Value stores the style as JSONB.
func (s StyleSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StyleSpec) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported style column type %T", src)
	}
}
