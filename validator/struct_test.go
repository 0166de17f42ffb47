package validator

import (
	"strings"
	"testing"
)

type owner struct {
	Email string `json:"email" validate:"required,email"`
}

type widgetRequest struct {
	Name     string `json:"name" validate:"required,max=8"`
	Quantity int    `json:"quantity,omitempty" validate:"gte=1"`
	Color    string `validate:"omitempty,oneof=red blue"`
	Owner    owner  `json:"owner"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(&widgetRequest{
		Name:  "far too long",
		Color: "green",
		Owner: owner{Email: "nope"},
	})

	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), errs)
	}
	if errs["name"] != "The field 'name' must be no longer than 8 characters." {
		t.Errorf("unexpected name message %q", errs["name"])
	}
	if errs["quantity"] != "The field 'quantity' must be greater than or equal to 1." {
		t.Errorf("unexpected quantity message %q", errs["quantity"])
	}
	if errs["Color"] != "The field 'Color' must be one of red blue." {
		t.Errorf("unexpected color message %q", errs["Color"])
	}
	if errs["owner.email"] != "The field 'owner.email' must be a valid email address." {
		t.Errorf("unexpected owner email message %q", errs["owner.email"])
	}
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(widgetRequest{Name: "bolt", Quantity: 2, Owner: owner{Email: "a@b.co"}})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateStructLanguage(t *testing.T) {
	errs := ValidateStruct(&widgetRequest{Quantity: 1, Owner: owner{Email: "a@b.co"}}, "zh-CN,zh;q=0.9")
	if !strings.Contains(errs["name"], "必填") {
		t.Errorf("expected chinese message, got %q", errs["name"])
	}

	errs = ValidateStruct(&widgetRequest{Quantity: 1, Owner: owner{Email: "a@b.co"}}, "fr")
	if errs["name"] != "The field 'name' is required." {
		t.Errorf("expected english fallback, got %q", errs["name"])
	}
}

func TestValidateStructInvalidInput(t *testing.T) {
	errs := ValidateStruct(42)
	if _, ok := errs["_"]; !ok {
		t.Errorf("expected invalid validation error, got %v", errs)
	}
}
