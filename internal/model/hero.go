package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// HeroRef is the normalized form of the backend's loosely typed hero field.
// Historic stat rows carry a raw numeric id, newer rows embed a hero object,
// and some rows have nothing at all. The union is resolved once, here at the
// JSON boundary, so aggregation code never re-inspects the original shape.
type HeroRef struct {
	ID   int64
	Name string
	// Valid is false when no hero id could be determined for the row.
	Valid bool
}

func (h HeroRef) MarshalJSON() ([]byte, error) {
	if !h.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		ID   int64  `json:"hero_id"`
		Name string `json:"name"`
	}{ID: h.ID, Name: h.Name})
}

func (h *HeroRef) UnmarshalJSON(data []byte) error {
	*h = HeroRef{}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		return nil
	}

	// Raw numeric id.
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		h.ID = id
		h.Valid = true
		return nil
	}

	// Numeric id serialized as a string, or a bare hero name.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if id, convErr := strconv.ParseInt(strings.TrimSpace(s), 10, 64); convErr == nil {
			h.ID = id
			h.Valid = true
		} else {
			// A name alone gives no id; the row stays invalid but the
			// name is kept so display fallbacks can still use it.
			h.Name = strings.TrimSpace(s)
		}
		return nil
	}

	// Embedded hero object.
	var obj struct {
		HeroID *int64 `json:"hero_id"`
		ID     *int64 `json:"id"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("hero reference: %w", err)
	}
	switch {
	case obj.HeroID != nil:
		h.ID = *obj.HeroID
		h.Valid = true
	case obj.ID != nil:
		h.ID = *obj.ID
		h.Valid = true
	}
	h.Name = obj.Name
	return nil
}

// DisplayName resolves a render-ready hero name, preferring the embedded
// name, then the legacy free-text fallback, then a synthetic label.
func (h HeroRef) DisplayName(fallback string) string {
	if h.Name != "" {
		return h.Name
	}
	if s := strings.TrimSpace(fallback); s != "" {
		return s
	}
	return fmt.Sprintf("Hero %d", h.ID)
}
