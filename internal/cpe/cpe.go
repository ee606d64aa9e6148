package cpe

import (
	"strings"

	"github.com/StinkyLord/ecu-sbom-spdx/internal/model"
)

// CPE 2.3 part codes.
const (
	PartApplication     = "a"
	PartOperatingSystem = "o"
	PartHardware        = "h"
)

// Prefix is the fixed start of every formatted CPE 2.3 string.
const Prefix = "cpe:2.3"

// FieldCount is the number of colon-separated fields in a formatted CPE.
const FieldCount = 13

// Policy lists the characters permitted per field on top of the base set.
// Ampersands are not permitted anywhere: the CPE 2.3 formatted-string
// binding reserves them, and the same token is reused as a package name.
type Policy struct {
	VendorExtra  string
	ProductExtra string
	VersionExtra string
}

// DefaultPolicy is the policy used by the transformer.
var DefaultPolicy = Policy{}

// Identifier is a CPE 2.3 name reduced to the fields this tool fills in.
// Every other attribute is ANY ("*").
type Identifier struct {
	Part    string
	Vendor  string
	Product string
	Version string
}

// String renders the formatted-string binding:
// cpe:2.3:<part>:<vendor>:<product>:<version>:*:*:*:*:*:*:*
func (id Identifier) String() string {
	fields := make([]string, 0, FieldCount)
	fields = append(fields, "cpe", "2.3",
		orAny(id.Part), orAny(id.Vendor), orAny(id.Product), orAny(id.Version))
	for len(fields) < FieldCount {
		fields = append(fields, "*")
	}
	return strings.Join(fields, ":")
}

func orAny(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

// PartFor maps a component remark to a part code. Only "os" (any case) is
// recognised; hardware is never inferred.
func PartFor(remark model.OptString) string {
	if remark.Present() && strings.EqualFold(remark.Value, "os") {
		return PartOperatingSystem
	}
	return PartApplication
}

// Fields holds the sanitized values of a component, computed once and shared
// by the CPE and the SPDX package built from it.
type Fields struct {
	Vendor  string
	Product string
	Version string
	Part    string

	HasVendor  bool
	HasVersion bool
}

// CPE returns the identifier for the sanitized fields.
func (f Fields) CPE() Identifier {
	return Identifier{
		Part:    f.Part,
		Vendor:  f.Vendor,
		Product: f.Product,
		Version: f.Version,
	}
}

// FromComponent sanitizes c under the given policy. A nil component yields
// the all-fallback fields.
func FromComponent(c *model.Component, p Policy) Fields {
	if c == nil {
		c = &model.Component{}
	}
	return Fields{
		Vendor:     SanitizeOr(c.Vendor.Or(""), UnknownVendor, p.VendorExtra),
		Product:    SanitizeOr(c.Name.Or(""), UnknownProduct, p.ProductExtra),
		Version:    SanitizeOr(c.Version.Or(""), UnknownVersion, p.VersionExtra),
		Part:       PartFor(c.Remark),
		HasVendor:  c.Vendor.Present(),
		HasVersion: c.Version.Present(),
	}
}

// Generate returns the formatted CPE for c under DefaultPolicy.
func Generate(c *model.Component) string {
	return FromComponent(c, DefaultPolicy).CPE().String()
}
