// Package validate provides Laravel-inspired struct-tag validation.
//
// Rules are comma-separated in the `validate` tag:
//
//	required       field must not be zero/empty
//	nullable       if empty, skip all remaining rules for this field
//	email          valid email address
//	url            valid http/https URL
//	alpha_dash     letters, digits, hyphens, underscores
//	min=N          string: min char length | number: min value
//	max=N          string: max char length | number: max value
//	gt=N gte=N     number > N / >= N
//	lt=N lte=N     number < N / <= N
//	in=a,b,c       value must be one of the listed items (put last in the tag)
//
// Example:
//
//	type productInput struct {
//	    ID       string `json:"id"       validate:"required,alpha_dash,max=64"`
//	    Price    int    `json:"price"    validate:"required,gt=0"`
//	    Category string `json:"category" validate:"required,in=gummy,candy"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Struct validates every exported field of v that carries a `validate` tag.
// Keys of the returned map are json field names; an empty map means valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}
		name := jsonName(rt.Field(i))
		value := rv.Field(i)

		rules := parseTag(tag)
		if rules.nullable && isEmpty(value) {
			continue
		}
		for _, r := range rules.list {
			if msg := check(r, name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

// HasErrors reports whether the map from Struct contains any failure.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

type rule struct {
	name  string
	param string
}

type ruleSet struct {
	nullable bool
	list     []rule
}

// parseTag splits the validate tag. The in= rule swallows every comma after
// it, so it has to be the last rule in a tag.
func parseTag(tag string) ruleSet {
	var rs ruleSet
	rest := tag
	for rest != "" {
		var tok string
		if strings.HasPrefix(rest, "in=") {
			tok, rest = rest, ""
		} else {
			tok, rest, _ = strings.Cut(rest, ",")
		}
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == "nullable" {
			rs.nullable = true
			continue
		}
		name, param, _ := strings.Cut(tok, "=")
		rs.list = append(rs.list, rule{name: name, param: param})
	}
	return rs
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func check(r rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())

	switch r.name {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "url":
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}
	case "alpha_dash":
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", field)
			}
		}
	case "min":
		n := param(r)
		if isNumeric(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, r.param)
			}
		} else if float64(len([]rune(raw))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, r.param)
		}
	case "max":
		n := param(r)
		if isNumeric(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, r.param)
			}
		} else if float64(len([]rune(raw))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, r.param)
		}
	case "gt":
		if toFloat(v) <= param(r) {
			return fmt.Sprintf("The %s must be greater than %s.", field, r.param)
		}
	case "gte":
		if toFloat(v) < param(r) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, r.param)
		}
	case "lt":
		if toFloat(v) >= param(r) {
			return fmt.Sprintf("The %s must be less than %s.", field, r.param)
		}
	case "lte":
		if toFloat(v) > param(r) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, r.param)
		}
	case "in":
		for _, a := range strings.Split(r.param, ",") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func param(r rule) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(r.param), 64)
	return f
}

func jsonName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}
