package browser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/ui"
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title    string
	itemType string
	status   string
	year     string
	rating   string
	comment  string
	favorite bool
	tags     string
	confirm  bool
}

func (fb *formBindings) reset() {
	*fb = formBindings{
		itemType: string(model.ItemTypeMovie),
		status:   string(model.StatusPlanned),
	}
}

func (fb *formBindings) load(it model.Item) {
	fb.reset()
	fb.title = it.Title
	fb.itemType = string(it.Type)
	fb.status = string(it.Status)
	if it.Year != nil {
		fb.year = strconv.Itoa(*it.Year)
	}
	if it.Rating != nil {
		fb.rating = strconv.FormatFloat(*it.Rating, 'f', -1, 64)
	}
	if it.Comment != nil {
		fb.comment = *it.Comment
	}
	fb.favorite = it.Favorite
	fb.tags = ui.JoinTagNames(it.Tags)
}

// item converts the bound values into an item. Unparsable optional numbers
// are left unset; the form validators reject them before submit.
func (fb formBindings) item() model.Item {
	it := model.Item{
		Title:    strings.TrimSpace(fb.title),
		Type:     model.ItemType(fb.itemType),
		Status:   model.ItemStatus(fb.status),
		Favorite: fb.favorite,
		Tags:     ui.ParseTagNames(fb.tags),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(fb.year)); err == nil {
		it.Year = &y
	}
	if r, err := strconv.ParseFloat(strings.TrimSpace(fb.rating), 64); err == nil {
		it.Rating = &r
	}
	if c := strings.TrimSpace(fb.comment); c != "" {
		it.Comment = &c
	}
	return it
}

func (m *Model) buildItemForm() *huh.Form {
	typeOpts := make([]huh.Option[string], len(model.AllItemTypes))
	for i, t := range model.AllItemTypes {
		typeOpts[i] = huh.NewOption(titleCase(string(t)), string(t))
	}
	statusOpts := make([]huh.Option[string], len(model.AllItemStatuses))
	for i, st := range model.AllItemStatuses {
		statusOpts[i] = huh.NewOption(titleCase(string(st)), string(st))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What is it called?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOpts...).
				Value(&m.fb.itemType),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
			huh.NewInput().
				Title("Year").
				Placeholder("e.g. 1999 (optional)").
				Value(&m.fb.year).
				Validate(validateOptionalYear),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Rating").
				Placeholder("1-10 (optional)").
				Value(&m.fb.rating).
				Validate(validateOptionalRating),
			huh.NewText().
				Title("Comment").
				Placeholder("Optional notes...").
				Value(&m.fb.comment),
			huh.NewConfirm().
				Title("Favorite?").
				Value(&m.fb.favorite),
			huh.NewInput().
				Title("Tags").
				Placeholder("comma separated, new names are created").
				Value(&m.fb.tags),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m *Model) buildConfirmForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", title)).
				Description("It will be removed from every list.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalYear(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 || y > 9999 {
		return fmt.Errorf("year must be a number between 1 and 9999")
	}
	return nil
}

func validateOptionalRating(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r < 1 || r > 10 {
		return fmt.Errorf("rating must be between 1 and 10")
	}
	return nil
}
