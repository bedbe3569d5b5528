package domain_test

import (
	"testing"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayer_FirstStateIsDefault(t *testing.T) {
	l := domain.NewLayer("Clothes")
	assert.Equal(t, float64(1), l.DefaultWeight)

	_, err := l.AddState("Default", nil)
	require.NoError(t, err)
	_, err = l.AddState("Hat", &domain.Clip{Name: "Hat"})
	require.NoError(t, err)

	assert.Equal(t, "Default", l.DefaultState().Name)
	assert.Len(t, l.NonDefaultStates(), 1)

	_, err = l.AddState("Hat", nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateState)
}

func TestLayer_AddTransitionRejectsUnknownStates(t *testing.T) {
	l := domain.NewLayer("L")
	_, _ = l.AddState("Default", nil)

	assert.ErrorIs(t, l.AddTransition("Default", "Missing"), domain.ErrUnknownState)
	assert.ErrorIs(t, l.AddTransition("Missing", "Default"), domain.ErrUnknownState)
	assert.NoError(t, l.AddTransition(domain.AnyState, "Default", domain.Equals("p", 0)))
	assert.True(t, l.Transitions[0].FromAnyState())
	assert.True(t, l.Transitions[0].Immediate)
}

func TestController_EnsureLayerResets(t *testing.T) {
	c := domain.NewController("fx")
	l, created := c.EnsureLayer("L")
	require.True(t, created)
	l.DefaultWeight = 0.5
	_, _ = l.AddState("Default", nil)

	again, created := c.EnsureLayer("L")
	assert.False(t, created)
	assert.Same(t, l, again)
	assert.Empty(t, again.States)
	assert.Equal(t, 0.5, again.DefaultWeight)
	assert.Equal(t, []string{"L"}, c.LayerNames())
}

func TestParameterSpace_FirstWriterWins(t *testing.T) {
	s := domain.NewParameterSpace()
	p, added := s.Insert(domain.Parameter{Name: "Hat", Kind: domain.KindBool})
	assert.True(t, added)
	assert.Equal(t, domain.KindBool, p.Kind)

	p, added = s.Insert(domain.Parameter{Name: "Hat", Kind: domain.KindInt})
	assert.False(t, added)
	assert.Equal(t, domain.KindBool, p.Kind)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"Hat"}, s.NamesOfKind(domain.KindBool))
}

func TestParseParameterKind(t *testing.T) {
	k, err := domain.ParseParameterKind(" INT ")
	require.NoError(t, err)
	assert.Equal(t, domain.KindInt, k)

	_, err = domain.ParseParameterKind("trigger")
	assert.Error(t, err)
}

func validLayer() (*domain.Controller, *domain.Layer) {
	c := domain.NewController("fx")
	c.Parameters.Insert(domain.Parameter{Name: "Hat", Kind: domain.KindBool})
	l, _ := c.EnsureLayer("Clothes")
	_, _ = l.AddState("Default", nil)
	_, _ = l.AddState("Hat", nil)
	_ = l.AddTransition("Default", "Hat", domain.If("Hat"))
	_ = l.AddTransition("Hat", "Default", domain.IfNot("Hat"))
	return c, l
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, _ := validLayer()
		assert.NoError(t, c.Validate())
	})

	t.Run("no way back", func(t *testing.T) {
		c, l := validLayer()
		l.Transitions = l.Transitions[:1]
		errs := domain.ValidationErrors(c.Validate())
		require.Len(t, errs, 1)
		var ve *domain.ValidationError
		require.ErrorAs(t, errs[0], &ve)
		assert.Equal(t, "Hat", ve.State)
	})

	t.Run("unreachable", func(t *testing.T) {
		c, l := validLayer()
		l.Transitions = l.Transitions[1:]
		assert.Len(t, domain.ValidationErrors(c.Validate()), 1)
	})

	t.Run("two defaults", func(t *testing.T) {
		c, l := validLayer()
		l.State("Hat").Default = true
		assert.Error(t, c.Validate())
	})

	t.Run("wrong parameter kind", func(t *testing.T) {
		c, l := validLayer()
		l.Transitions[0].Conditions = []domain.Condition{domain.Equals("Hat", 1)}
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs an int parameter")
	})

	t.Run("undeclared parameter", func(t *testing.T) {
		c, l := validLayer()
		l.Transitions[0].Conditions = []domain.Condition{domain.If("Scarf")}
		assert.Contains(t, c.Validate().Error(), "undeclared parameter")
	})
}

func TestConditionString(t *testing.T) {
	assert.Equal(t, "Outfit == 2", domain.Equals("Outfit", 2).String())
	assert.Equal(t, "!Hat", domain.IfNot("Hat").String())
	assert.Equal(t, "Speed > 0.5", domain.Greater("Speed", 0.5).String())
}

func TestParameterKind_ZeroIsUnset(t *testing.T) {
	var k domain.ParameterKind
	assert.NotEqual(t, domain.KindFloat, k)
	assert.NotEqual(t, domain.KindBool, k)
	assert.NotEqual(t, domain.KindInt, k)

	k, err := domain.ParseParameterKind("trigger")
	assert.Error(t, err)
	assert.Zero(t, k)
}
