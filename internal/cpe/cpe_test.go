package cpe

import (
	"strings"
	"testing"

	"github.com/StinkyLord/ecu-sbom-spdx/internal/model"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		extra string
		want  string
	}{
		{"spaces", "Robert Bosch AG", "", "Robert_Bosch_AG"},
		{"whitespace run", "a \t\n  b", "", "a_b"},
		{"leading and trailing", "  x  ", "", "_x_"},
		{"version kept", "09.34", "", "09.34"},
		{"hyphen kept", "QNX-7.1_r2", "", "QNX-7.1_r2"},
		{"slash dropped", "v1.2/3", "", "v1.23"},
		{"colon dropped", "a:b:c", "", "abc"},
		{"ampersand dropped", "Foo & Bar", "", "Foo__Bar"},
		{"ampersand allowed", "Foo & Bar", "&", "Foo_&_Bar"},
		{"non-ascii dropped", "Zürich", "", "Zrich"},
		{"empty", "", "", ""},
		{"nothing survives", "#@!", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.raw, tt.extra); got != tt.want {
				t.Errorf("Sanitize(%q, %q) = %q, want %q", tt.raw, tt.extra, got, tt.want)
			}
		})
	}
}

var hostileInputs = []string{
	"Robert Bosch AG",
	"  lots   of\tspace\n",
	"cpe:2.3:a:evil:*:*",
	"Foo & Bar (GmbH)",
	"ÄÖÜ ß € ✓",
	"a   b",
	"###",
	"",
	"_-._-.",
	"x #  y",
}

func TestSanitizeIdempotent(t *testing.T) {
	for _, extra := range []string{"", "&"} {
		for _, raw := range hostileInputs {
			once := Sanitize(raw, extra)
			twice := Sanitize(once, extra)
			if once != twice {
				t.Errorf("Sanitize not idempotent for %q (extra %q): %q -> %q", raw, extra, once, twice)
			}
		}
	}
}

func TestSanitizeAllowedCharacters(t *testing.T) {
	for _, raw := range hostileInputs {
		out := Sanitize(raw, "")
		for _, r := range out {
			if !allowed(r) {
				t.Errorf("Sanitize(%q) = %q contains disallowed rune %q", raw, out, r)
			}
		}
	}
}

func TestSanitizeWhitespaceRuns(t *testing.T) {
	for _, ws := range []string{" ", "  ", "\t", " \t\n ", "\r\n", "\u00a0 "} {
		raw := "left" + ws + "right"
		if got := Sanitize(raw, ""); got != "left_right" {
			t.Errorf("Sanitize(%q) = %q, want left_right", raw, got)
		}
	}
}

func TestSanitizeOr(t *testing.T) {
	if got := SanitizeOr("", UnknownVendor, ""); got != UnknownVendor {
		t.Errorf("empty input: got %q, want %q", got, UnknownVendor)
	}
	if got := SanitizeOr("###", UnknownProduct, ""); got != UnknownProduct {
		t.Errorf("fully stripped input: got %q, want %q", got, UnknownProduct)
	}
	if got := SanitizeOr("ACME Corp", UnknownVendor, ""); got != "ACME_Corp" {
		t.Errorf("got %q, want ACME_Corp", got)
	}
}

func TestPartFor(t *testing.T) {
	tests := []struct {
		remark model.OptString
		want   string
	}{
		{model.Some("os"), PartOperatingSystem},
		{model.Some("OS"), PartOperatingSystem},
		{model.Some("Os"), PartOperatingSystem},
		{model.Some(""), PartApplication},
		{model.OptString{}, PartApplication},
		{model.Some("operating system"), PartApplication},
		{model.Some("hw"), PartApplication},
		{model.Some(" os "), PartApplication},
	}

	for _, tt := range tests {
		if got := PartFor(tt.remark); got != tt.want {
			t.Errorf("PartFor(%+v) = %q, want %q", tt.remark, got, tt.want)
		}
	}
}

func TestGenerateOperatingSystem(t *testing.T) {
	c := &model.Component{
		Name:    model.Some("CSS2 AB12 D1"),
		Vendor:  model.Some("Robert Bosch AG"),
		Version: model.Some("09.34"),
		Remark:  model.Some("os"),
	}

	want := "cpe:2.3:o:Robert_Bosch_AG:CSS2_AB12_D1:09.34:*:*:*:*:*:*:*"
	if got := Generate(c); got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateUnknownFields(t *testing.T) {
	want := "cpe:2.3:a:unknown_vendor:unknown_product:unknown_version:*:*:*:*:*:*:*"

	if got := Generate(&model.Component{}); got != want {
		t.Errorf("Generate(empty) = %q, want %q", got, want)
	}
	if got := Generate(nil); got != want {
		t.Errorf("Generate(nil) = %q, want %q", got, want)
	}

	blank := &model.Component{
		Name:    model.Some(""),
		Vendor:  model.Some(""),
		Version: model.Some(""),
	}
	if got := Generate(blank); got != want {
		t.Errorf("Generate(blank strings) = %q, want %q", got, want)
	}
}

func TestIdentifierFieldCount(t *testing.T) {
	for _, raw := range hostileInputs {
		c := &model.Component{
			Name:    model.Some(raw),
			Vendor:  model.Some(raw),
			Version: model.Some(raw),
			Remark:  model.Some(raw),
		}
		got := Generate(c)
		if n := len(strings.Split(got, ":")); n != FieldCount {
			t.Errorf("Generate(%q) = %q has %d fields, want %d", raw, got, n, FieldCount)
		}
		if !strings.HasPrefix(got, Prefix+":") {
			t.Errorf("Generate(%q) = %q, want prefix %q", raw, got, Prefix)
		}
	}

	if n := len(strings.Split(Identifier{}.String(), ":")); n != FieldCount {
		t.Errorf("zero Identifier has %d fields, want %d", n, FieldCount)
	}
}

func TestFromComponentPresence(t *testing.T) {
	f := FromComponent(&model.Component{
		Name:    model.Some("Gateway FW"),
		Vendor:  model.Some("Continental"),
		Version: model.Some(""),
	}, DefaultPolicy)

	if !f.HasVendor {
		t.Error("HasVendor = false, want true")
	}
	if f.HasVersion {
		t.Error("HasVersion = true for empty version, want false")
	}
	if f.Product != "Gateway_FW" {
		t.Errorf("Product = %q, want Gateway_FW", f.Product)
	}
	if f.Version != UnknownVersion {
		t.Errorf("Version = %q, want %q", f.Version, UnknownVersion)
	}
}

func TestPolicyExtras(t *testing.T) {
	c := &model.Component{
		Name:   model.Some("R&D Tool"),
		Vendor: model.Some("Smith & Sons"),
	}

	def := FromComponent(c, DefaultPolicy)
	if def.Vendor != "Smith__Sons" || def.Product != "RD_Tool" {
		t.Errorf("default policy: vendor %q product %q", def.Vendor, def.Product)
	}

	amp := FromComponent(c, Policy{VendorExtra: "&", ProductExtra: "&"})
	if amp.Vendor != "Smith_&_Sons" || amp.Product != "R&D_Tool" {
		t.Errorf("ampersand policy: vendor %q product %q", amp.Vendor, amp.Product)
	}
}
