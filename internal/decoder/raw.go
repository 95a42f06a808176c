package decoder

import "encoding/json"

// Raw document shapes. Pointers distinguish absent from zero; RawMessage
// fields accept both the compact scalar forms and the tagged object
// forms of the wire format.

type rawLayout struct {
	Name           *string         `json:"name"`
	Description    *string         `json:"description"`
	Author         *string         `json:"author"`
	Language       *string         `json:"language"`
	Locale         *string         `json:"locale"`
	Version        *string         `json:"version"`
	DefaultPanelID *string         `json:"default_panel_id"`
	Inherits       *string         `json:"inherits"`
	Panels         json.RawMessage `json:"panels"`
}

type rawPanel struct {
	ID      *string  `json:"id"`
	Padding *float64 `json:"padding"`
	Margin  *float64 `json:"margin"`
	Rows    []rawRow `json:"rows"`
}

type rawRow struct {
	Cells []json.RawMessage `json:"cells"`
}

// rawCellTag peeks at the discriminator before the full cell decode.
type rawCellTag struct {
	Type string `json:"type"`
}

type rawKey struct {
	Label         *string                    `json:"label"`
	Code          json.RawMessage            `json:"code"`
	Identifier    *string                    `json:"identifier"`
	Width         json.RawMessage            `json:"width"`
	Height        json.RawMessage            `json:"height"`
	MinWidth      *float64                   `json:"min_width"`
	MinHeight     *float64                   `json:"min_height"`
	Sticky        *bool                      `json:"sticky"`
	StickyRelease *bool                      `json:"stickyrelease"`
	Alternatives  map[string]json.RawMessage `json:"alternatives"`
}

type rawWidget struct {
	WidgetType *string         `json:"widget_type"`
	Width      json.RawMessage `json:"width"`
	Height     json.RawMessage `json:"height"`
}

type rawPanelRef struct {
	PanelID *string         `json:"panel_id"`
	Width   json.RawMessage `json:"width"`
	Height  json.RawMessage `json:"height"`
}
