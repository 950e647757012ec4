package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"manualdesk/internal/models"
)

func TestParseAssistantReply(t *testing.T) {
	got := ParseAssistantReply("Check the relief valve, see [Valve block](page-id:sm-valve) and [pump](page-id: sm-pump ).")
	assert.Equal(t, []ReplyPart{
		{Text: "Check the relief valve, see "},
		{Label: "Valve block", PageID: "sm-valve"},
		{Text: " and "},
		{Label: "pump", PageID: "sm-pump"},
		{Text: "."},
	}, got)
}

func TestParseAssistantReply_PlainAndEmptyTarget(t *testing.T) {
	assert.Equal(t, []ReplyPart{{Text: "no links"}}, ParseAssistantReply("no links"))
	assert.Nil(t, ParseAssistantReply(""))

	got := ParseAssistantReply("[x](page-id:)")
	assert.Equal(t, []ReplyPart{{Text: "[x](page-id:)"}}, got)
	assert.False(t, got[0].IsLink())
}

func TestRenderHintsFor_CoversEveryKind(t *testing.T) {
	for _, k := range []models.PageKind{
		models.PageKindContent, models.PageKindProcedure, models.PageKindTroubleshooting, models.PageKindDiagram,
	} {
		h := RenderHintsFor(k)
		assert.Equal(t, k, h.Kind)
		assert.NotEmpty(t, h.Layout)
	}
	assert.Panics(t, func() { RenderHintsFor("hologram") })
}

func TestPlaceholder_EscapesTitle(t *testing.T) {
	p := Placeholder(`Pump <b>"A"</b>`)
	assert.Contains(t, p.HTML, "Pump &lt;b&gt;&#34;A&#34;&lt;/b&gt;")
}
