package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/orderdesk/internal/catalog"
	"github.com/muurk/orderdesk/internal/clipboard"
	"github.com/muurk/orderdesk/internal/deskclient"
	"github.com/muurk/orderdesk/internal/dispatch"
	"github.com/muurk/orderdesk/internal/launcher"
	"github.com/muurk/orderdesk/internal/order"
	"github.com/muurk/orderdesk/internal/prompt"
	"github.com/muurk/orderdesk/internal/ui"
	"github.com/muurk/orderdesk/internal/urls"
	"github.com/muurk/orderdesk/internal/wizard/tui"
)

// Order command flags
var (
	orderName        string
	orderMobile      string
	orderBrand       string
	orderModel       string
	orderAccessories string
	dryRun           bool
	assumeYes        bool
	catalogFormat    string
	catalogBrand     string
	catalogDesk      string
)

func init() {
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(catalogCmd)
}

// wizardCmd launches the full-screen order form
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Enter an order in the full-screen form (default)",
	Long: `Launch the full-screen order form.

Move between fields with the arrow keys, press Enter to edit a field and
's' to send. Invalid fields show their message inline. After a desktop send
a banner confirms the copy until dismissed with 'd'.`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	if err := initLogging(""); err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	// Printing the link would corrupt the full-screen form.
	var opener dispatch.Opener
	if !a.settings.Client.NoOpen {
		opener = launcher.Browser{Quiet: true}
	}
	d, err := a.dispatcher(opener)
	if err != nil {
		return err
	}

	sent, err := tui.Run(func() *order.Controller { return a.controller(d) })
	if err != nil {
		return err
	}
	if sent > 0 {
		fmt.Printf("%d order(s) sent to %s\n", sent, a.settings.Link().Plain())
	}
	return nil
}

// promptCmd asks for the order one question at a time
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Enter an order as a series of questions",
	Long: `Ask for each field in turn, then show the message and send it.

Useful where a full-screen form is unwelcome. Fields that fail validation are
asked again with their error shown as help (press '?').`,
	Example: `  # Ask, confirm and send
  orderdesk prompt

  # Send without the final confirmation
  orderdesk prompt --yes`,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Send without asking for confirmation")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	if err := initLogging(""); err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	d, err := a.dispatcher(a.opener())
	if err != nil {
		return err
	}

	flow := &prompt.Flow{
		Controller:  a.controller(d),
		Driver:      prompt.SurveyDriver{PageSize: 10},
		Out:         os.Stdout,
		SkipConfirm: assumeYes,
	}
	res, err := flow.Run(cmd.Context())
	if errors.Is(err, prompt.ErrAborted) || errors.Is(err, prompt.ErrDeclined) {
		fmt.Println("Order not sent.")
		return nil
	}
	if err != nil {
		return err
	}

	printDispatch(ui.NewPrinter(os.Stdout), res.Dispatch)
	return nil
}

// sendCmd submits an order from flags
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an order without interaction",
	Long: `Validate an order given as flags and hand it off.

Exits with status 1 and lists every failing field when the order is invalid.
With --dry-run nothing is opened or copied; the message and link are printed.`,
	Example: `  # Send from a desktop: copies the message and opens the chat
  orderdesk send --name "Jane Doe" --mobile 03001234567 \
    --brand Samsung --model "Galaxy S24"

  # Preview what a phone would open
  orderdesk send --name Jane --mobile 03001234567 --brand Apple \
    --model "iPhone SE" --accessories "Case" --platform android --dry-run`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&orderName, "name", "", "Customer full name")
	sendCmd.Flags().StringVar(&orderMobile, "mobile", "", "Customer mobile number")
	sendCmd.Flags().StringVar(&orderBrand, "brand", "", "Device brand")
	sendCmd.Flags().StringVar(&orderModel, "model", "", "Device model")
	sendCmd.Flags().StringVar(&orderAccessories, "accessories", "", "Accessories, free text (\\n for new lines)")
	sendCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the message and link without opening or copying")
}

func runSend(cmd *cobra.Command, args []string) error {
	if err := initLogging(""); err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var (
		d        *dispatch.Dispatcher
		recorder *launcher.Recorder
	)
	if dryRun {
		recorder = &launcher.Recorder{}
		d = &dispatch.Dispatcher{
			Link:       a.settings.Link(),
			Classifier: dispatch.DetectPlatform(a.settings.Client.Platform),
			Clipboard:  &clipboard.Memory{},
			Opener:     recorder,
		}
	} else if d, err = a.dispatcher(a.opener()); err != nil {
		return err
	}

	c := a.controller(d)
	c.UpdateField(order.FieldName, orderName)
	c.UpdateField(order.FieldMobile, orderMobile)
	c.UpdateField(order.FieldBrand, orderBrand)
	c.UpdateField(order.FieldModel, orderModel)
	c.UpdateField(order.FieldAccessories, strings.ReplaceAll(orderAccessories, `\n`, "\n"))

	p := ui.NewPrinter(os.Stdout)
	title := "Send Order"
	if dryRun {
		title = "Send Order (dry run)"
	}
	p.PrintHeader(title, "orderdesk send",
		ui.Detail{Key: "Destination", Value: a.settings.Link().Plain()},
		ui.Detail{Key: "Platform", Value: string(dispatch.DetectPlatform(a.settings.Client.Platform))},
	)

	res := c.Submit()
	if !res.Valid {
		p.PrintError("Order invalid", errors.New(order.FormatValidationErrors(res.Errors)), sendTroubleshooting(res.Errors))
		return fmt.Errorf("order invalid: %d field(s) failed", len(res.Errors))
	}

	p.PrintPreview(res.Message)
	printDispatch(p, res.Dispatch)
	return nil
}

// sendTroubleshooting suggests a fix for each failing field
func sendTroubleshooting(errs order.FieldErrors) []string {
	var tips []string
	notListed := false
	for _, fe := range errs.List() {
		switch {
		case order.IsTooShort(fe):
			minLen := order.MinNameLength
			if fe.Field == order.FieldMobile {
				minLen = order.MinMobileLength
			}
			tips = append(tips, fmt.Sprintf("%s needs at least %d characters", fe.Field.Label(), minLen))
		case order.IsRequired(fe):
			tips = append(tips, fmt.Sprintf("Pass --%s", fe.Field))
		case order.IsNotListed(fe):
			notListed = true
		}
	}
	if notListed {
		tips = append(tips, "Run 'orderdesk catalog' to list brands and models")
	}
	return tips
}

// printDispatch reports where the order went
func printDispatch(p *ui.Printer, res dispatch.Result) {
	r := ui.NewSuccessResult("Order handed off",
		ui.Detail{Key: "Path", Value: string(res.Path)},
		ui.Detail{Key: "Link", Value: res.URL},
	)
	if res.Path == dispatch.PathDesktop {
		if res.Copied {
			r.AddDetail("Clipboard", "copied, paste it into the chat")
		} else {
			r = ui.NewWarningResult("Order not copied",
				ui.Detail{Key: "Path", Value: string(res.Path)},
				ui.Detail{Key: "Link", Value: res.URL},
				ui.Detail{Key: "Clipboard", Value: "unavailable, copy the message above"},
				ui.Detail{Key: "Setup", Value: urls.ClipboardSetup},
			)
		}
	}
	if !res.Opened {
		r.AddDetail("Opened", "no, open the link yourself")
	}
	p.PrintResult(r)
}

// opener returns the browser, or a printer when opening is disabled
func (a *app) opener() dispatch.Opener {
	if a.settings.Client.NoOpen {
		return launcher.Printer{W: os.Stdout}
	}
	return launcher.Browser{}
}

// catalogCmd lists brands and models
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List brands and models",
	Long: `Print the catalog in use: the built-in one, or the file given by
--catalog, ORDERDESK_CATALOG or the config file.

The yaml output is a valid catalog file and can be edited and passed back
with --catalog.`,
	Example: `  # All brands and models
  orderdesk catalog

  # Models of one brand
  orderdesk catalog --brand Samsung

  # Start a custom catalog
  orderdesk catalog --format yaml > catalog.yaml

  # Copy the catalog of a desk running elsewhere
  orderdesk catalog --desk http://192.168.1.20:8080 --format yaml`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "text", "Output format (text, yaml, json)")
	catalogCmd.Flags().StringVar(&catalogBrand, "brand", "", "Only list models of this brand")
	catalogCmd.Flags().StringVar(&catalogDesk, "desk", "", "Fetch the catalog from a running desk (URL)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if err := initLogging(""); err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	cat := a.catalog
	if catalogDesk != "" {
		cat, err = deskclient.NewClient(catalogDesk).Catalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch catalog from %s: %w", catalogDesk, err)
		}
	}

	entries := cat.Entries()
	if catalogBrand != "" {
		if !cat.HasBrand(catalogBrand) {
			return fmt.Errorf("unknown brand %q (known: %s)", catalogBrand, strings.Join(cat.Brands(), ", "))
		}
		for _, e := range entries {
			if e.Brand == catalogBrand {
				entries = []catalog.Entry{e}
				break
			}
		}
	}

	switch catalogFormat {
	case "yaml":
		data, err := yaml.Marshal(catalog.File{Brands: entries})
		if err != nil {
			return fmt.Errorf("failed to marshal catalog: %w", err)
		}
		fmt.Print(string(data))
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
	case "text":
		ui.NewPrinter(os.Stdout).PrintCatalog(entries)
	default:
		return fmt.Errorf("unknown format %q (valid: text, yaml, json)", catalogFormat)
	}
	return nil
}
