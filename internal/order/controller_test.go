package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muurk/orderdesk/internal/clipboard"
	"github.com/muurk/orderdesk/internal/dispatch"
)

type nopOpener struct{ urls []string }

func (o *nopOpener) Open(u string) error {
	o.urls = append(o.urls, u)
	return nil
}

func newTestController(mobile bool) (*Controller, *clipboard.Memory, *nopOpener) {
	mem := &clipboard.Memory{}
	opener := &nopOpener{}
	c := NewController(Options{
		Sender: &dispatch.Dispatcher{
			Link:       dispatch.NewLink("", ""),
			Classifier: dispatch.Static(mobile),
			Clipboard:  mem,
			Opener:     opener,
		},
	})
	return c, mem, opener
}

func fillValid(c *Controller) {
	c.UpdateField(FieldName, "Ali Khan")
	c.UpdateField(FieldMobile, "03001234567")
	c.UpdateField(FieldBrand, "Apple")
	c.UpdateField(FieldModel, "iPhone 15 Pro")
}

func TestBrandChangeResetsModel(t *testing.T) {
	c, _, _ := newTestController(false)

	c.UpdateField(FieldBrand, "Apple")
	c.Submit()
	if !c.Errors().Has(FieldModel) {
		t.Fatal("expected a model error before the brand change")
	}

	c.UpdateField(FieldModel, "iPhone 15")
	c.UpdateField(FieldBrand, "Samsung")

	if got := c.Form().Model; got != "" {
		t.Errorf("model = %q, want empty after brand change", got)
	}
	if c.Errors().Has(FieldModel) {
		t.Error("model error must be cleared on brand change")
	}

	c.Submit()
	c.UpdateField(FieldBrand, "")
	if c.Errors().Has(FieldModel) || c.Errors().Has(FieldBrand) {
		t.Error("brand edit must clear brand and model errors")
	}
	if diff := cmp.Diff([]string{}, c.ModelOptions()); diff != "" {
		t.Errorf("ModelOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestShortNameFails(t *testing.T) {
	c, mem, opener := newTestController(false)
	fillValid(c)
	c.UpdateField(FieldName, "A")

	res := c.Submit()

	if res.Valid {
		t.Fatal("expected validation failure")
	}
	err := c.Errors()[FieldName]
	if !IsTooShort(err) {
		t.Errorf("expected TooShort name error, got %v", err)
	}
	if err.Message != MsgNameTooShort {
		t.Errorf("message = %q", err.Message)
	}
	if c.Status() != StatusIdle {
		t.Errorf("status = %v, want idle", c.Status())
	}
	if mem.Acquired() != 0 || len(opener.urls) != 0 {
		t.Error("nothing may be dispatched on validation failure")
	}
}

func TestValidSubmitFormatsMessage(t *testing.T) {
	c, _, _ := newTestController(true)
	fillValid(c)

	res := c.Submit()

	if !res.Valid {
		t.Fatalf("expected valid submission, got %s", FormatValidationErrors(res.Errors))
	}
	if len(c.Errors()) != 0 {
		t.Errorf("expected zero errors, got %v", c.Errors())
	}

	want := "*New Order Request*\n\n*Name:* Ali Khan\n*Mobile:* 03001234567\n*Brand:* Apple\n*Model:* iPhone 15 Pro"
	if res.Message != want {
		t.Errorf("message mismatch:\n got %q\nwant %q", res.Message, want)
	}

	labeled := 0
	for _, line := range strings.Split(res.Message, "\n") {
		for _, label := range []string{"*Name:* ", "*Mobile:* ", "*Brand:* ", "*Model:* "} {
			if strings.HasPrefix(line, label) {
				labeled++
			}
		}
	}
	if labeled != 4 {
		t.Errorf("expected 4 labeled lines, got %d", labeled)
	}
}

func TestAccessoriesSectionIsLast(t *testing.T) {
	c, _, _ := newTestController(true)
	fillValid(c)
	c.UpdateField(FieldAccessories, "Clear case\nScreen protector")

	res := c.Submit()

	suffix := "\n\n*Accessories:*\nClear case\nScreen protector"
	if !strings.HasSuffix(res.Message, suffix) {
		t.Errorf("message does not end with accessories section: %q", res.Message)
	}
	if strings.Index(res.Message, "*Model:*") > strings.Index(res.Message, "*Accessories:*") {
		t.Error("accessories must follow the model line")
	}
}

func TestDesktopSubmitCopies(t *testing.T) {
	c, mem, opener := newTestController(false)
	fillValid(c)

	res := c.Submit()

	if c.Status() != StatusCopied {
		t.Errorf("status = %v, want copied", c.Status())
	}
	if mem.Text() != res.Message {
		t.Errorf("clipboard = %q, want the order message", mem.Text())
	}
	if len(opener.urls) != 1 || strings.Contains(opener.urls[0], "text=") {
		t.Errorf("expected phone-only link, got %v", opener.urls)
	}

	c.DismissStatus()
	if c.Status() != StatusIdle {
		t.Errorf("status after dismiss = %v, want idle", c.Status())
	}
}

func TestDesktopSubmitCopiedEvenWhenClipboardFails(t *testing.T) {
	c := NewController(Options{
		Sender: &dispatch.Dispatcher{
			Link:       dispatch.NewLink("", ""),
			Classifier: dispatch.Static(false),
			Clipboard:  clipboard.None{},
		},
	})
	fillValid(c)

	res := c.Submit()

	if !res.Valid || res.Dispatch.Copied {
		t.Fatalf("unexpected result %+v", res)
	}
	if c.Status() != StatusCopied {
		t.Errorf("status = %v, want copied", c.Status())
	}
}

func TestMobileSubmitCarriesText(t *testing.T) {
	c, mem, opener := newTestController(true)
	fillValid(c)
	c.UpdateField(FieldAccessories, "Charger & 2 cables, 50% off?")

	res := c.Submit()

	if c.Status() != StatusIdle {
		t.Errorf("status = %v, want idle", c.Status())
	}
	if mem.Acquired() != 0 {
		t.Error("mobile path must not use the clipboard")
	}
	if len(opener.urls) != 1 {
		t.Fatalf("expected one opened URL, got %d", len(opener.urls))
	}

	u, err := url.Parse(opener.urls[0])
	if err != nil {
		t.Fatalf("invalid URL: %v", err)
	}
	text := u.Query().Get("text")
	if text == "" {
		t.Fatal("expected non-empty text parameter")
	}
	if text != res.Message {
		t.Errorf("decoded text does not reproduce the message:\n got %q\nwant %q", text, res.Message)
	}
}

func TestEditResetsCopiedStatus(t *testing.T) {
	c, _, _ := newTestController(false)
	fillValid(c)
	c.Submit()

	c.UpdateField(FieldAccessories, "case")

	if c.Status() != StatusIdle {
		t.Errorf("status = %v, want idle after edit", c.Status())
	}
}

func TestUpdateClearsOnlyEditedField(t *testing.T) {
	c, _, _ := newTestController(false)
	c.Submit()

	want := []string{"name", "mobile", "brand", "model"}
	if diff := cmp.Diff(want, c.Errors().Names()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	c.UpdateField(FieldMobile, "1")

	want = []string{"name", "brand", "model"}
	if diff := cmp.Diff(want, c.Errors().Names()); diff != "" {
		t.Errorf("errors after edit mismatch (-want +got):\n%s", diff)
	}
}

func TestLastValidationWins(t *testing.T) {
	c, _, _ := newTestController(false)
	c.Submit()

	c.UpdateField(FieldName, "Ali")
	c.UpdateField(FieldMobile, "03001234567")
	c.UpdateField(FieldBrand, "Apple")
	c.UpdateField(FieldModel, "iPhone SE")
	c.UpdateField(FieldName, "A")
	c.Submit()

	if diff := cmp.Diff([]string{"name"}, c.Errors().Names()); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	c, _, _ := newTestController(false)

	c.UpdateField(FieldBrand, "Samsung")
	c.UpdateField(FieldModel, "Galaxy A55")
	first := c.Form()
	firstErrs := c.Errors()

	c.UpdateField(FieldModel, "Galaxy A55")
	c.UpdateField(FieldModel, "Galaxy A55")

	if diff := cmp.Diff(first, c.Form()); diff != "" {
		t.Errorf("form changed on repeated update (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(firstErrs.Names(), c.Errors().Names()); diff != "" {
		t.Errorf("errors changed on repeated update (-want +got):\n%s", diff)
	}
}

func TestUnknownFieldIgnored(t *testing.T) {
	c, _, _ := newTestController(false)
	c.UpdateField(FieldName, "Ali")

	c.UpdateField(Field("colour"), "red")

	if diff := cmp.Diff(Form{Name: "Ali"}, c.Form()); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestModelOptionsFollowBrand(t *testing.T) {
	c, _, _ := newTestController(false)

	if len(c.ModelOptions()) != 0 {
		t.Error("expected no models before a brand is selected")
	}

	c.UpdateField(FieldBrand, "Google Pixel")
	want := []string{"Pixel 8 Pro", "Pixel 8", "Pixel 7a", "Pixel Fold", "Pixel 7 Pro"}
	if diff := cmp.Diff(want, c.ModelOptions()); diff != "" {
		t.Errorf("ModelOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitWithoutSender(t *testing.T) {
	c := NewController(Options{Formatter: Formatter{Greeting: "Hi"}})
	fillValid(c)

	res := c.Submit()

	if !res.Valid {
		t.Fatal("expected valid submission")
	}
	if !strings.HasPrefix(res.Message, "Hi\n\n*New Order Request*") {
		t.Errorf("expected greeting prefix, got %q", res.Message)
	}
	if c.Status() != StatusIdle {
		t.Errorf("status = %v, want idle without a sender", c.Status())
	}
}
