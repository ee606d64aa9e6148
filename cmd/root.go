package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/StinkyLord/ecu-sbom-spdx/internal/cpe"
	"github.com/StinkyLord/ecu-sbom-spdx/internal/logging"
	"github.com/StinkyLord/ecu-sbom-spdx/internal/model"
	"github.com/StinkyLord/ecu-sbom-spdx/internal/report"
	"github.com/StinkyLord/ecu-sbom-spdx/internal/transform"
)

const toolVersion = "1.0.0"

var (
	flagInput     string
	flagOutputDir string
	flagCreator   string
	flagPURL      bool
	flagParallel  bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "ecu-sbom-spdx",
	Short: "ECU inventory to SPDX converter",
	Long: `ecu-sbom-spdx reads an inventory of components per ECU category and
writes one SPDX 2.3 JSON document per category. Every package carries a
CPE 2.3 identifier built from the component's vendor, name and version.

Input (Sbom.json):
  {
    "<identifier>": {
      "ecu_name": "...",
      "components": [
        { "component": "...", "vendor": "...", "version": "...",
          "product_name": "...", "category": "...", "remark": "os" }
      ]
    }
  }

Output: ECU-<identifier>.spdx.json for each category.

Running without a subcommand converts ./Sbom.json into the current directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

var convertCmd = &cobra.Command{
	Use:   "convert [identifier...]",
	Short: "Convert the inventory into SPDX documents",
	Long: `Convert every category of the inventory (or only the given identifiers)
into SPDX 2.3 JSON documents.

Examples:
  ecu-sbom-spdx convert
  ecu-sbom-spdx convert --input inventory.yaml --output-dir out/
  ecu-sbom-spdx convert BCM TCU --purl`,
	RunE: runConvert,
}

var cpeCmd = &cobra.Command{
	Use:   "cpe <component.json>",
	Short: "Print the CPE identifier for a single component object",
	Args:  cobra.ExactArgs(1),
	RunE:  runCPE,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")

	addConvertFlags(rootCmd.Flags())
	addConvertFlags(convertCmd.Flags())

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(cpeCmd)
}

// addConvertFlags binds the conversion flags; the root command shares them
// so that a bare invocation behaves like "convert".
func addConvertFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flagInput, "input", "i", "Sbom.json", "Inventory file (JSON, or YAML by .yaml/.yml extension)")
	fs.StringVarP(&flagOutputDir, "output-dir", "o", ".", "Directory for the ECU-<identifier>.spdx.json files")
	fs.StringVar(&flagCreator, "creator", transform.DefaultCreator+"-"+toolVersion, "creationInfo creator entry")
	fs.BoolVar(&flagPURL, "purl", false, "Add a pkg:generic package URL external reference to every package")
	fs.BoolVar(&flagParallel, "parallel", false, "Generate categories concurrently")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := logging.New(flagVerbose)
	defer log.Sync() //nolint:errcheck

	log.Debug("loading inventory", zap.String("input", flagInput), zap.String("version", toolVersion))
	inv, err := model.LoadInventory(flagInput)
	if err != nil {
		return err
	}
	log.Info("inventory loaded", zap.String("input", flagInput), zap.Int("categories", inv.Len()))

	t := transform.New(flagOutputDir, log)
	t.Creator = flagCreator
	t.WithPURL = flagPURL
	t.Parallel = flagParallel
	t.Report = report.NewConsole(cmd.OutOrStdout())

	docs, err := t.Transform(inv, args...)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	log.Info("conversion finished", zap.Int("documents", len(docs)))
	return nil
}

func runCPE(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read component %q: %w", args[0], err)
	}

	var c model.Component
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("component %q is not valid JSON: %w", args[0], err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cpe.Generate(&c))
	return nil
}
