package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPosition() PositionData {
	return PositionData{
		Placement:       "after_paragraph",
		ReferenceAnchor: "2",
		Alignment:       "center",
		Size:            PositionSize{Width: 400, Height: 300},
		Style:           "figure",
	}
}

func TestPositionDataValidate(t *testing.T) {
	assert.NoError(t, validPosition().Validate())
}

func TestPositionDataValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *PositionData)
	}{
		{"unknown placement", func(p *PositionData) { p.Placement = "floating" }},
		{"empty placement", func(p *PositionData) { p.Placement = "" }},
		{"unknown alignment", func(p *PositionData) { p.Alignment = "justified" }},
		{"missing anchor for after_paragraph", func(p *PositionData) { p.ReferenceAnchor = "" }},
		{"zero width", func(p *PositionData) { p.Size.Width = 0 }},
		{"negative height", func(p *PositionData) { p.Size.Height = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPosition()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestPositionDataAnchorOptionalAtSectionEdges(t *testing.T) {
	p := validPosition()
	p.Placement = "section_end"
	p.ReferenceAnchor = ""
	assert.NoError(t, p.Validate())

	p.Placement = "section_start"
	assert.NoError(t, p.Validate())
}

func TestPositionDataJSONRoundTrip(t *testing.T) {
	p := validPosition()

	value, err := p.Value()
	require.NoError(t, err)

	var scanned PositionData
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, p, scanned)
}
