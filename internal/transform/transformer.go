// Package transform turns an ECU inventory into one SPDX document per
// category and writes each document to disk.
package transform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/package-url/packageurl-go"
	"go.uber.org/zap"

	"github.com/StinkyLord/ecu-sbom-spdx/internal/cpe"
	"github.com/StinkyLord/ecu-sbom-spdx/internal/model"
	"github.com/StinkyLord/ecu-sbom-spdx/internal/output"
	"github.com/StinkyLord/ecu-sbom-spdx/internal/report"
)

// DefaultCreator is the creationInfo creator used when none is configured.
const DefaultCreator = "Tool: ecu-sbom-spdx"

// isoMillis matches JavaScript's Date.toISOString output.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Transformer builds and writes SPDX documents.
type Transformer struct {
	OutputDir string
	Creator   string
	Policy    cpe.Policy

	// WithPURL adds a pkg:generic package URL as a second external
	// reference on every package.
	WithPURL bool

	// Parallel generates categories concurrently. Output is identical to
	// the sequential run; each category writes its own file.
	Parallel bool

	// Now is the clock used for creation timestamps and namespaces.
	Now func() time.Time

	// Report receives the per-category summary; nil disables it.
	Report *report.Console

	log *zap.Logger
}

// New creates a Transformer writing into outputDir.
func New(outputDir string, log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transformer{
		OutputDir: outputDir,
		Creator:   DefaultCreator,
		Policy:    cpe.DefaultPolicy,
		Now:       time.Now,
		log:       log,
	}
}

type categoryResult struct {
	identifier string
	record     *model.CategoryRecord
	doc        *output.Document
	rows       []report.Row
	path       string
	skipped    bool
	err        error
}

// Transform builds a document for each identifier (all categories in
// inventory order when none are given) and writes it to
// <OutputDir>/ECU-<identifier>.spdx.json. Identifiers missing from the
// inventory are logged and skipped. Write failures do not stop the other
// categories; they are returned together once every category ran.
func (t *Transformer) Transform(inv *model.Inventory, identifiers ...string) (map[string]*output.Document, error) {
	if inv == nil {
		return nil, errors.New("inventory is nil")
	}
	if len(identifiers) == 0 {
		identifiers = inv.Identifiers()
	}

	dir := t.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create output directory %q: %w", dir, err)
	}

	results := make([]categoryResult, len(identifiers))
	if t.Parallel {
		var wg sync.WaitGroup
		for i, id := range identifiers {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				results[i] = t.runCategory(inv, id, dir)
			}(i, id)
		}
		wg.Wait()
	} else {
		for i, id := range identifiers {
			results[i] = t.runCategory(inv, id, dir)
		}
	}

	docs := make(map[string]*output.Document, len(results))
	var errs []error
	for _, r := range results {
		if r.skipped {
			t.log.Warn("category not found in inventory, skipping", zap.String("identifier", r.identifier))
			continue
		}
		docs[r.identifier] = r.doc
		if t.Report != nil {
			t.Report.Summary(r.identifier, r.record.ECUName, r.rows)
		}
		if r.err != nil {
			t.log.Error("failed to write SPDX document",
				zap.String("identifier", r.identifier), zap.String("path", r.path), zap.Error(r.err))
			errs = append(errs, fmt.Errorf("category %q: %w", r.identifier, r.err))
			continue
		}
		if t.Report != nil {
			t.Report.Written(r.path)
		}
		t.log.Debug("SPDX document written",
			zap.String("identifier", r.identifier),
			zap.String("path", r.path),
			zap.Int("packages", len(r.doc.Packages)))
	}

	return docs, errors.Join(errs...)
}

func (t *Transformer) runCategory(inv *model.Inventory, identifier, dir string) categoryResult {
	rec, ok := inv.Get(identifier)
	if !ok {
		return categoryResult{identifier: identifier, skipped: true}
	}

	doc, rows := t.build(identifier, rec)
	path := filepath.Join(dir, output.FileName(identifier))
	return categoryResult{
		identifier: identifier,
		record:     rec,
		doc:        doc,
		rows:       rows,
		path:       path,
		err:        output.WriteSPDX(doc, path),
	}
}

// BuildDocument returns the SPDX document for one category without
// writing it.
func (t *Transformer) BuildDocument(identifier string, rec *model.CategoryRecord) *output.Document {
	doc, _ := t.build(identifier, rec)
	return doc
}

func (t *Transformer) build(identifier string, rec *model.CategoryRecord) (*output.Document, []report.Row) {
	if rec == nil {
		rec = &model.CategoryRecord{}
	}
	now := t.now()

	doc := &output.Document{
		SPDXID:      output.DocumentID,
		SPDXVersion: output.SPDXVersion,
		CreationInfo: output.CreationInfo{
			Created:  now.UTC().Format(isoMillis),
			Creators: []string{t.creator()},
		},
		Name:              "SBOM-" + rec.ECUName,
		DataLicense:       output.DataLicense,
		DocumentNamespace: fmt.Sprintf("%s%s-%d", output.NamespacePrefix, identifier, now.UnixMilli()),
		Packages:          make([]output.Package, 0, len(rec.Components)),
		Relationships:     make([]output.Relationship, 0, len(rec.Components)),
	}
	rows := make([]report.Row, 0, len(rec.Components))

	for i, c := range rec.Components {
		if c == nil {
			c = &model.Component{}
		}
		f := cpe.FromComponent(c, t.Policy)
		cpeString := f.CPE().String()
		pkgID := output.PackageID(i)

		pkg := output.Package{
			SPDXID:           pkgID,
			Name:             f.Product,
			DownloadLocation: output.NoAssertion,
			FilesAnalyzed:    false,
			ExternalRefs: []output.ExternalRef{
				{
					ReferenceCategory: c.Category.Or(output.CategorySecurity),
					ReferenceLocator:  cpeString,
					ReferenceType:     output.RefTypeCPE23,
				},
			},
		}
		if f.HasVendor {
			pkg.Supplier = "Organization: " + f.Vendor
		}
		if f.HasVersion {
			pkg.VersionInfo = f.Version
		}
		if t.WithPURL {
			pkg.ExternalRefs = append(pkg.ExternalRefs, output.ExternalRef{
				ReferenceCategory: output.CategoryPkgMgr,
				ReferenceLocator:  genericPURL(f),
				ReferenceType:     output.RefTypePURL,
			})
		}

		doc.Packages = append(doc.Packages, pkg)
		doc.Relationships = append(doc.Relationships, output.Relationship{
			SPDXElementID:      output.DocumentID,
			RelationshipType:   output.RelDescribes,
			RelatedSPDXElement: pkgID,
		})

		row := report.Row{
			Name:     f.Product,
			Product:  c.ProductName.Or(""),
			Category: c.Category.Or(""),
			CPE:      cpeString,
		}
		if f.HasVendor {
			row.Vendor = f.Vendor
		}
		if f.HasVersion {
			row.Version = f.Version
		}
		rows = append(rows, row)
	}

	return doc, rows
}

// genericPURL renders pkg:generic/<vendor>/<product>@<version>, leaving out
// vendor and version when the component does not carry them.
func genericPURL(f cpe.Fields) string {
	var namespace, version string
	if f.HasVendor {
		namespace = f.Vendor
	}
	if f.HasVersion {
		version = f.Version
	}
	return packageurl.NewPackageURL(packageurl.TypeGeneric, namespace, f.Product, version, nil, "").ToString()
}

func (t *Transformer) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func (t *Transformer) creator() string {
	if t.Creator == "" {
		return DefaultCreator
	}
	return t.Creator
}
