package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/ameya/pkg/validate"
)

type productInput struct {
	ID       string `json:"id"       validate:"required,alpha_dash,max=64"`
	Name     string `json:"name"     validate:"required,max=255"`
	Price    int    `json:"price"    validate:"required,gt=0"`
	Stock    int    `json:"stock"    validate:"gte=0"`
	ImageURL string `json:"imageUrl" validate:"nullable,url"`
	Category string `json:"category" validate:"required,in=gummy,candy"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		ID:       "gummy-001",
		Name:     "フルーツグミミックス",
		Price:    280,
		Stock:    50,
		Category: "gummy",
	})
	assert.False(t, validate.HasErrors(errs), "got: %v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	assert.True(t, validate.HasErrors(errs))
	assert.Contains(t, errs, "id")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
}

func TestFirstFailingRuleWins(t *testing.T) {
	errs := validate.Struct(productInput{
		ID:       "not valid!",
		Name:     "x",
		Price:    100,
		Category: "gummy",
	})
	assert.Equal(t,
		"The id field may only contain letters, numbers, dashes, and underscores.",
		errs["id"])
}

func TestInRule(t *testing.T) {
	in := productInput{ID: "c-1", Name: "x", Price: 1, Category: "chocolate"}
	errs := validate.Struct(in)
	assert.Contains(t, errs, "category")

	in.Category = "candy"
	assert.False(t, validate.HasErrors(validate.Struct(in)))
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	assert.Contains(t, validate.Struct(in{Email: "not-an-email"}), "email")
	assert.Empty(t, validate.Struct(in{Email: "taro@example.com"}))
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Rating int `json:"rating" validate:"required,gte=1,lte=5"`
	}
	assert.Contains(t, validate.Struct(in{Rating: 6}), "rating")
	assert.Empty(t, validate.Struct(in{Rating: 3}))
}

func TestMinOnStringsCountsRunes(t *testing.T) {
	type in struct {
		Comment string `json:"comment" validate:"required,min=4"`
	}
	assert.Contains(t, validate.Struct(in{Comment: "うまい"}), "comment")
	assert.Empty(t, validate.Struct(in{Comment: "とてもうまい"}))
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"nullable,url"`
	}
	assert.Empty(t, validate.Struct(in{Site: ""}))
	assert.Contains(t, validate.Struct(in{Site: "not-a-url"}), "site")
	assert.Empty(t, validate.Struct(in{Site: "https://ameya.dev"}))
}

func TestPointerTarget(t *testing.T) {
	in := &productInput{ID: "gummy-002", Name: "コーラグミ", Price: 150, Category: "gummy"}
	assert.Empty(t, validate.Struct(in))
}
