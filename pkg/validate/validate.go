// Package validate checks struct fields against rules in the `validate`
// tag and returns field-to-message maps ready for a 422 response.
//
// Supported rules (comma separated):
//
//	required            non-zero / non-empty
//	nullable            empty skips the remaining rules
//	email, url, ip      format checks
//	alpha_num           letters and digits
//	alpha_dash          letters, digits, hyphens, underscores
//	numeric, integer    parseable number / whole number
//	min=N, max=N        string length or numeric bound
//	gt/gte/lt/lte=N     numeric comparisons
//	between=lo,hi       numeric value or string length range
//	digits=N            exactly N decimal digits (pincodes)
//	in=a,b,c            allowed values
//	not_in=a,b,c        forbidden values
//	regex=pattern       pattern match (no commas in the pattern)
//	confirmed           must equal the sibling <field>_confirmation
//
// Example from checkout:
//
//	type CheckoutInput struct {
//	    Phone   string `json:"phone"   validate:"required,min=10,max=15"`
//	    Pincode string `json:"pincode" validate:"required,digits=6"`
//	    Payment string `json:"payment_method" validate:"required,in=upi,cod,bank"`
//	}
package validate

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	emailRE  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsRE = regexp.MustCompile(`^\d+$`)
)

// Struct validates every exported field of v carrying a `validate` tag.
// The returned map is keyed by the field's json name; empty means valid.
func Struct(v interface{}) map[string]string {
	out := make(map[string]string)

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return out
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(typ.Field(i))
		fv := val.Field(i)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(fv) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := check(rule, name, fv, val); msg != "" {
				out[name] = msg
				break // report the first failing rule per field
			}
		}
	}

	return out
}

// HasErrors reports whether the map holds any messages.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// check evaluates one rule against one field, returning the failure
// message or "".
func check(rule, name string, fv reflect.Value, owner reflect.Value) string {
	str := fmt.Sprintf("%v", fv.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(fv) {
			return fmt.Sprintf("The %s field is required.", name)
		}

	case "email":
		if !emailRE.MatchString(str) {
			return fmt.Sprintf("The %s must be a valid email address.", name)
		}
	case "url":
		u, err := url.ParseRequestURI(str)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", name)
		}
	case "ip":
		if net.ParseIP(str) == nil {
			return fmt.Sprintf("The %s must be a valid IP address.", name)
		}

	case "alpha_num":
		if !lettersDigitsOnly(str, "") {
			return fmt.Sprintf("The %s field must contain only letters and numbers.", name)
		}
	case "alpha_dash":
		if !lettersDigitsOnly(str, "-_") {
			return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", name)
		}
	case "numeric":
		if _, err := strconv.ParseFloat(str, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", name)
		}
	case "integer":
		if _, err := strconv.ParseInt(str, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", name)
		}

	case "min":
		if sizeOf(fv, str) < parseFloat(param) {
			if isNumericKind(fv) {
				return fmt.Sprintf("The %s must be at least %s.", name, param)
			}
			return fmt.Sprintf("The %s must be at least %s characters.", name, param)
		}
	case "max":
		if sizeOf(fv, str) > parseFloat(param) {
			if isNumericKind(fv) {
				return fmt.Sprintf("The %s must not be greater than %s.", name, param)
			}
			return fmt.Sprintf("The %s must not exceed %s characters.", name, param)
		}
	case "gt":
		if numValue(fv) <= parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than %s.", name, param)
		}
	case "gte":
		if numValue(fv) < parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", name, param)
		}
	case "lt":
		if numValue(fv) >= parseFloat(param) {
			return fmt.Sprintf("The %s must be less than %s.", name, param)
		}
	case "lte":
		if numValue(fv) > parseFloat(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", name, param)
		}
	case "between":
		lo, hi, ok := strings.Cut(param, ",")
		if !ok {
			return ""
		}
		size := sizeOf(fv, str)
		if size < parseFloat(lo) || size > parseFloat(hi) {
			if isNumericKind(fv) {
				return fmt.Sprintf("The %s must be between %s and %s.", name, lo, hi)
			}
			return fmt.Sprintf("The %s must be between %s and %s characters.", name, lo, hi)
		}
	case "digits":
		if !digitsRE.MatchString(str) || float64(len(str)) != parseFloat(param) {
			return fmt.Sprintf("The %s must be %s digits.", name, param)
		}

	case "in":
		if !inList(str, param) {
			return fmt.Sprintf("The selected %s is invalid.", name)
		}
	case "not_in":
		if inList(str, param) {
			return fmt.Sprintf("The selected %s is invalid.", name)
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil {
			return fmt.Sprintf("The %s has an invalid validation pattern.", name)
		}
		if !re.MatchString(str) {
			return fmt.Sprintf("The %s format is invalid.", name)
		}

	case "confirmed":
		// The tagged field is the *_confirmation one; compare it with
		// the base field it confirms.
		base := siblingByJSONName(owner, strings.TrimSuffix(name, "_confirmation"))
		if base == nil || fmt.Sprintf("%v", base.Interface()) != str {
			return fmt.Sprintf("The %s confirmation does not match.", name)
		}
	}

	return ""
}

func lettersDigitsOnly(s, extra string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && !strings.ContainsRune(extra, c) {
			return false
		}
	}
	return true
}

func inList(s, param string) bool {
	for _, item := range strings.Split(param, ",") {
		if s == strings.TrimSpace(item) {
			return true
		}
	}
	return false
}

func isEmpty(fv reflect.Value) bool {
	switch fv.Kind() {
	case reflect.String:
		return strings.TrimSpace(fv.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return fv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return fv.IsNil()
	case reflect.Bool:
		// false is a legitimate value, not an omission
		return false
	}
	if isNumericKind(fv) {
		return numValue(fv) == 0
	}
	return false
}

func isNumericKind(fv reflect.Value) bool {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// sizeOf is the quantity min/max/between compare: the numeric value for
// numbers, the rune length for everything else.
func sizeOf(fv reflect.Value, str string) float64 {
	if isNumericKind(fv) {
		return numValue(fv)
	}
	return float64(len([]rune(str)))
}

func numValue(fv reflect.Value) float64 {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(fv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(fv.Uint())
	case reflect.Float32, reflect.Float64:
		return fv.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", fv.Interface()), 64)
	return f
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ = strings.Cut(name, ",")
	return name
}

// splitRules splits the tag on commas while keeping the multi-value
// parameters of in=, not_in= and between= intact:
// "required,in=upi,cod,bank,max=20" becomes ["required","in=upi,cod,bank","max=20"]
func splitRules(tag string) []string {
	var rules []string
	var cur strings.Builder
	multi := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]

		if ch == ',' && (!multi || startsNewRule(tag[i+1:])) {
			rules = append(rules, cur.String())
			cur.Reset()
			multi = false
			continue
		}

		cur.WriteByte(ch)
		if ch == '=' && !multi {
			switch {
			case strings.HasSuffix(cur.String(), "in="),
				strings.HasSuffix(cur.String(), "between="):
				// in= also covers not_in=
				multi = true
			}
		}
	}
	if cur.Len() > 0 {
		rules = append(rules, cur.String())
	}
	return rules
}

var ruleKeywords = []string{
	"required", "nullable", "email", "url", "ip",
	"alpha_num", "alpha_dash", "numeric", "integer", "confirmed",
	"regex=", "min=", "max=", "gt=", "gte=", "lt=", "lte=",
	"digits=", "in=", "not_in=", "between=",
}

func startsNewRule(s string) bool {
	for _, k := range ruleKeywords {
		if strings.HasPrefix(s, k) {
			return true
		}
	}
	return false
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}

func siblingByJSONName(owner reflect.Value, name string) *reflect.Value {
	typ := owner.Type()
	for i := 0; i < typ.NumField(); i++ {
		if jsonFieldName(typ.Field(i)) == name {
			fv := owner.Field(i)
			return &fv
		}
	}
	return nil
}
