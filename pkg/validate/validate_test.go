package validate_test

import (
	"testing"

	"github.com/muthuvel/santhai/pkg/validate"
)

type addressInput struct {
	Label                string  `json:"label"          validate:"required,alpha_dash,min=2,max=40"`
	Email                string  `json:"email"          validate:"required,email"`
	Phone                string  `json:"phone"          validate:"required,min=10,max=15"`
	PhoneConfirmation    string  `json:"phone_confirmation" validate:"confirmed"`
	Pincode              string  `json:"pincode"        validate:"required,digits=6"`
	PaymentMethod        string  `json:"payment_method" validate:"required,in=upi,cod,bank"`
	LandingPage          string  `json:"landing_page"   validate:"nullable,url"`
	DeviceIP             string  `json:"device_ip"      validate:"required,ip"`
	QuantityKg           float64 `json:"quantity_kg"    validate:"required,between=0.25,25"`
	DeliveryWindowHours  int     `json:"delivery_window_hours" validate:"required,gte=2,lte=72"`
}

func validAddress() addressInput {
	return addressInput{
		Label:               "home_front-gate",
		Email:               "muthu@example.com",
		Phone:               "9840012345",
		PhoneConfirmation:   "9840012345",
		Pincode:             "625001",
		PaymentMethod:       "upi",
		LandingPage:         "",
		DeviceIP:            "10.0.4.21",
		QuantityKg:          1.5,
		DeliveryWindowHours: 24,
	}
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(validAddress())
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(addressInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["label"]; !ok {
		t.Error("expected label to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	in := validAddress()
	in.Email = "not-an-email"
	if errs := validate.Struct(in); errs["email"] == "" {
		t.Error("expected email validation error")
	}
}

func TestNumericBounds(t *testing.T) {
	in := validAddress()
	in.DeliveryWindowHours = 1
	if errs := validate.Struct(in); errs["delivery_window_hours"] == "" {
		t.Error("expected window below 2 hours to fail")
	}
	in.DeliveryWindowHours = 96
	if errs := validate.Struct(in); errs["delivery_window_hours"] == "" {
		t.Error("expected window above 72 hours to fail")
	}
}

func TestInRule(t *testing.T) {
	in := validAddress()
	in.PaymentMethod = "barter"
	if errs := validate.Struct(in); errs["payment_method"] == "" {
		t.Error("expected unknown payment method to fail")
	}
	in.PaymentMethod = "cod"
	if errs := validate.Struct(in); errs["payment_method"] != "" {
		t.Errorf("expected cod to pass: %v", errs)
	}
}

func TestConfirmedRule(t *testing.T) {
	in := validAddress()
	in.PhoneConfirmation = "9999999999"
	if errs := validate.Struct(in); errs["phone_confirmation"] == "" {
		t.Error("expected confirmation mismatch to fail")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	in := validAddress()
	in.LandingPage = ""
	if errs := validate.Struct(in); errs["landing_page"] != "" {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	in.LandingPage = "not-a-url"
	if errs := validate.Struct(in); errs["landing_page"] == "" {
		t.Error("expected non-empty invalid URL to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	in := validAddress()
	in.QuantityKg = 40
	if errs := validate.Struct(in); errs["quantity_kg"] == "" {
		t.Error("expected 40kg to exceed the range")
	}
	in.QuantityKg = 0.25
	if errs := validate.Struct(in); errs["quantity_kg"] != "" {
		t.Errorf("expected the lower bound to pass: %v", errs)
	}
}

func TestDigitsRule(t *testing.T) {
	in := validAddress()
	in.Pincode = "62500"
	if errs := validate.Struct(in); errs["pincode"] == "" {
		t.Error("expected a five digit pincode to fail")
	}
	in.Pincode = "62500a"
	if errs := validate.Struct(in); errs["pincode"] == "" {
		t.Error("expected a non-numeric pincode to fail")
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"required,url"`
	}
	if errs := validate.Struct(in{Site: "https://santhai.example.com/offers"}); validate.HasErrors(errs) {
		t.Errorf("expected valid URL to pass: %v", errs)
	}
	if errs := validate.Struct(in{Site: "ftp://santhai.example.com"}); !validate.HasErrors(errs) {
		t.Error("expected non-http scheme to fail")
	}
}

func TestIPRule(t *testing.T) {
	in := validAddress()
	in.DeviceIP = "999.999.0.1"
	if errs := validate.Struct(in); errs["device_ip"] == "" {
		t.Error("expected invalid IP to fail")
	}
}

func TestAlphaDashRule(t *testing.T) {
	in := validAddress()
	in.Label = "home label!"
	if errs := validate.Struct(in); errs["label"] == "" {
		t.Error("expected spaces and punctuation to fail alpha_dash")
	}
}

func TestMultiValueParamsSplitCorrectly(t *testing.T) {
	type in struct {
		Method string `json:"method" validate:"required,in=upi,cod,bank,max=10"`
	}
	if errs := validate.Struct(in{Method: "bank"}); validate.HasErrors(errs) {
		t.Errorf("expected bank to satisfy the in list: %v", errs)
	}
	if errs := validate.Struct(in{Method: "cheque"}); errs["method"] == "" {
		t.Error("expected cheque to be rejected")
	}
}
