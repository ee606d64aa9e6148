// Package output provides the SPDX document types and serializer.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Fixed SPDX values used by every document.
const (
	SPDXVersion      = "SPDX-2.3"
	DataLicense      = "CC0-1.0"
	DocumentID       = "SPDXRef-DOCUMENT"
	NoAssertion      = "NOASSERTION"
	NamespacePrefix  = "http://spdx.org/spdxdocs/"
	RelDescribes     = "DESCRIBES"
	RefTypeCPE23     = "cpe23Type"
	RefTypePURL      = "purl"
	CategorySecurity = "SECURITY"
	CategoryPkgMgr   = "PACKAGE-MANAGER"
)

// ---- SPDX 2.3 JSON schema types ----

type Document struct {
	SPDXID            string         `json:"SPDXID"`
	SPDXVersion       string         `json:"spdxVersion"`
	CreationInfo      CreationInfo   `json:"creationInfo"`
	Name              string         `json:"name"`
	DataLicense       string         `json:"dataLicense"`
	DocumentNamespace string         `json:"documentNamespace"`
	Packages          []Package      `json:"packages"`
	Relationships     []Relationship `json:"relationships"`
}

type CreationInfo struct {
	Created  string   `json:"created"`
	Creators []string `json:"creators"`
}

type Package struct {
	SPDXID           string        `json:"SPDXID"`
	Name             string        `json:"name"`
	DownloadLocation string        `json:"downloadLocation"`
	FilesAnalyzed    bool          `json:"filesAnalyzed"`
	ExternalRefs     []ExternalRef `json:"externalRefs"`
	Supplier         string        `json:"supplier,omitempty"`
	VersionInfo      string        `json:"versionInfo,omitempty"`
}

type ExternalRef struct {
	ReferenceCategory string `json:"referenceCategory"`
	ReferenceLocator  string `json:"referenceLocator"`
	ReferenceType     string `json:"referenceType"`
}

// Relationship links two SPDX elements; this tool only emits
// DOCUMENT DESCRIBES <package>.
type Relationship struct {
	SPDXElementID      string `json:"spdxElementId"`
	RelationshipType   string `json:"relationshipType"`
	RelatedSPDXElement string `json:"relatedSpdxElement"`
}

// FileName returns the artifact name for a category identifier.
func FileName(identifier string) string {
	return "ECU-" + identifier + ".spdx.json"
}

// PackageID returns the SPDX id of the package at zero-based position i.
func PackageID(i int) string {
	return fmt.Sprintf("SPDXRef-pkg-%d", i)
}

// WriteSPDX serialises doc as indented JSON and writes it to outputPath.
// If outputPath is "-", it writes to stdout.
func WriteSPDX(doc *Document, outputPath string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(outputPath, data, 0644)
}

// Marshal renders doc as two-space indented JSON with a trailing newline.
// HTML characters are written as-is so names stay readable in diffs.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal SPDX JSON: %w", err)
	}
	return buf.Bytes(), nil
}
