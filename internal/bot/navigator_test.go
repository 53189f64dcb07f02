package bot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbot/internal/domain"
)

func TestBrowseToProductDelivers(t *testing.T) {
	h := newHarness(t)
	h.seed(t, widgetA())

	h.say(LabelCatalog)
	require.Equal(t, domain.StateBrandChosen, h.state(t).State)
	kb := replyKeyboard(t, h.msgr.lastText(t, userID))
	assert.Equal(t, LabelBack, kb.Keyboard[0][0].Text)
	assert.Equal(t, "Acme", kb.Keyboard[1][0].Text)
	assert.True(t, kb.ResizeKeyboard)

	h.say("Acme")
	s := h.state(t)
	require.Equal(t, domain.StateCategoryChosen, s.State)
	assert.Equal(t, "Acme", s.SelectedBrand)

	h.say("Widgets")
	s = h.state(t)
	require.Equal(t, domain.StateProductChosen, s.State)
	assert.Equal(t, "Widgets", s.SelectedCategory)

	h.msgr.reset()
	h.say("Widget-A")
	assert.Nil(t, h.state(t))

	calls := h.msgr.to(userID)
	require.Len(t, calls, 2)
	assert.Equal(t, "copy", calls[0].Op)
	assert.Equal(t, 42, calls[0].MessageID)
	require.NotNil(t, calls[0].Inline)
	require.Len(t, calls[0].Inline.InlineKeyboard, 1)
	btn := calls[0].Inline.InlineKeyboard[0][0]
	assert.Equal(t, "🛒 Buy on Ozon", btn.Text)
	require.NotNil(t, btn.URL)
	assert.Equal(t, "https://ozon.example/widget-a", *btn.URL)
	assert.Equal(t, textNextAction, calls[1].Text)
}

func TestBackWalksUpTheMenus(t *testing.T) {
	h := newHarness(t)
	h.seed(t, widgetA())

	h.say(LabelCatalog)
	h.say("Acme")
	h.say("Widgets")

	h.say(LabelBack)
	s := h.state(t)
	require.Equal(t, domain.StateCategoryChosen, s.State)
	assert.Equal(t, "Acme", s.SelectedBrand)

	h.say(LabelBack)
	require.Equal(t, domain.StateBrandChosen, h.state(t).State)

	h.say(LabelBack)
	assert.Nil(t, h.state(t))
	assert.Equal(t, textMainMenu, h.msgr.lastText(t, userID).Text)
}

func TestUnknownSelectionReturnsToIdle(t *testing.T) {
	cases := []struct {
		name  string
		steps []string
		want  string
	}{
		{"brand", []string{LabelCatalog, "Globex"}, fmt.Sprintf(textNoCategories, "Globex")},
		{"category", []string{LabelCatalog, "Acme", "Gadgets"}, fmt.Sprintf(textNoProducts, "Gadgets")},
		{"product", []string{LabelCatalog, "Acme", "Widgets", "Widget-Z"}, fmt.Sprintf(textProductNotFound, "Widget-Z")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.seed(t, widgetA())
			for _, s := range tc.steps {
				h.say(s)
			}
			assert.Nil(t, h.state(t))
			assert.Equal(t, tc.want, h.msgr.lastText(t, userID).Text)
		})
	}
}

func TestBrandWithoutCategoriesReturnsToIdle(t *testing.T) {
	h := newHarness(t)
	h.seed(t, widgetA())
	_, err := h.brands.GetOrCreate(context.Background(), "Globex")
	require.NoError(t, err)

	h.say(LabelCatalog)
	kb := replyKeyboard(t, h.msgr.lastText(t, userID))
	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, "Globex", kb.Keyboard[1][1].Text)

	h.say("Globex")
	assert.Nil(t, h.state(t))
	last := h.msgr.lastText(t, userID)
	assert.Equal(t, fmt.Sprintf(textNoCategories, "Globex"), last.Text)
	assert.Equal(t, mainKeyboard(), last.Opts.Markup)
}

func TestCategoryEmptiedByDeleteReturnsToIdle(t *testing.T) {
	h := newHarness(t)
	h.seed(t, widgetA())
	h.sayAs(operatorA, "/delete_product [Acme] [Widgets] [Widget-A]")

	h.say(LabelCatalog)
	h.say("Acme")
	require.Equal(t, domain.StateCategoryChosen, h.state(t).State)
	kb := replyKeyboard(t, h.msgr.lastText(t, userID))
	assert.Equal(t, "Widgets", kb.Keyboard[1][0].Text)

	h.say("Widgets")
	assert.Nil(t, h.state(t))
	assert.Equal(t, fmt.Sprintf(textNoProducts, "Widgets"), h.msgr.lastText(t, userID).Text)
}

func TestEmptyCatalogStaysIdle(t *testing.T) {
	h := newHarness(t)
	h.say(LabelCatalog)
	assert.Nil(t, h.state(t))
	assert.Equal(t, textNoBrands, h.msgr.lastText(t, userID).Text)
}

func TestIdleIgnoresOtherText(t *testing.T) {
	h := newHarness(t)
	h.seed(t, widgetA())
	h.say("Acme")
	assert.Empty(t, h.msgr.to(userID))
	assert.Nil(t, h.state(t))
}

func TestInfoPagesAreStateless(t *testing.T) {
	h := newHarness(t)
	h.say(LabelWarranty)
	c := h.msgr.lastText(t, userID)
	assert.Equal(t, textWarranty, c.Text)
	assert.Equal(t, ModeMarkdown, c.Opts.ParseMode)

	h.say(LabelReturns)
	assert.Equal(t, textReturns, h.msgr.lastText(t, userID).Text)
	assert.Nil(t, h.state(t))
}

func TestStartResetsFromAnyState(t *testing.T) {
	h := newHarness(t)
	h.say(LabelOperator)
	require.Equal(t, domain.StateChatting, h.state(t).State)

	h.say("/start")
	assert.Nil(t, h.state(t))
	assert.Equal(t, textChooseAction, h.msgr.lastText(t, userID).Text)

	var welcome *call
	for _, c := range h.msgr.to(userID) {
		if c.Text == textWelcome {
			c := c
			welcome = &c
		}
	}
	require.NotNil(t, welcome)
	assert.NotNil(t, welcome.Opts.Markup)
}

func TestAuditChannelFailureIsSwallowed(t *testing.T) {
	h := newHarness(t)
	h.msgr.failChats[logChannel] = true
	h.say("/start")
	assert.Equal(t, textChooseAction, h.msgr.lastText(t, userID).Text)
}

func TestStartIsAudited(t *testing.T) {
	h := newHarness(t)
	h.say("/start")
	c := h.msgr.lastText(t, logChannel)
	assert.Regexp(t, `^📋 #USER_ACTION \| \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\n\n`, c.Text)
	assert.Equal(t, ModeHTML, c.Opts.ParseMode)
	assert.True(t, c.Opts.DisablePreview)
}
