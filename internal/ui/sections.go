package ui

// Section identifies the active view. List sections are reachable from
// the tab bar; form sections are entered through new/edit actions and
// always return to their entity's list.
type Section int

const (
	SectionTropes Section = iota
	SectionCategories
	SectionWorks
	SectionExamples
	SectionAnalytics
	SectionAI
	SectionCreateTrope
	SectionCreateWork
	SectionCreateExample
	SectionEditTrope
	SectionEditWork
	SectionEditExample
)

// sectionLabels names the tab-bar sections in display order.
var sectionTabs = []Section{
	SectionTropes,
	SectionCategories,
	SectionWorks,
	SectionExamples,
	SectionAnalytics,
	SectionAI,
}

var sectionLabels = map[Section]string{
	SectionTropes:        "Tropes",
	SectionCategories:    "Categories",
	SectionWorks:         "Works",
	SectionExamples:      "Examples",
	SectionAnalytics:     "Analytics",
	SectionAI:            "Assistant",
	SectionCreateTrope:   "New Trope",
	SectionCreateWork:    "New Work",
	SectionCreateExample: "New Example",
	SectionEditTrope:     "Edit Trope",
	SectionEditWork:      "Edit Work",
	SectionEditExample:   "Edit Example",
}

// searchPlaceholders gives the search box hint per section. Sections
// absent from the map do not take search input.
var searchPlaceholders = map[Section]string{
	SectionTropes:     "Search tropes and categories...",
	SectionCategories: "Search tropes and categories...",
	SectionWorks:      "Filter works...",
	SectionExamples:   "Filter examples...",
}

// sectionRenderers dispatches rendering per section. Replaces the
// string-keyed switch of a conventional view controller: adding a
// section means adding a variant and a row here.
var sectionRenderers = map[Section]func(*Model) string{
	SectionTropes:        (*Model).viewTropes,
	SectionCategories:    (*Model).viewCategories,
	SectionWorks:         (*Model).viewWorks,
	SectionExamples:      (*Model).viewExamples,
	SectionAnalytics:     (*Model).viewAnalytics,
	SectionAI:            (*Model).viewAI,
	SectionCreateTrope:   (*Model).viewForm,
	SectionCreateWork:    (*Model).viewForm,
	SectionCreateExample: (*Model).viewForm,
	SectionEditTrope:     (*Model).viewForm,
	SectionEditWork:      (*Model).viewForm,
	SectionEditExample:   (*Model).viewForm,
}

// listSection maps any section to the list it belongs to, used when a
// form completes and the view returns to the entity's list.
func listSection(s Section) Section {
	switch s {
	case SectionCreateTrope, SectionEditTrope:
		return SectionTropes
	case SectionCreateWork, SectionEditWork:
		return SectionWorks
	case SectionCreateExample, SectionEditExample:
		return SectionExamples
	default:
		return s
	}
}

// searchable reports whether the section takes search input.
func searchable(s Section) bool {
	_, ok := searchPlaceholders[s]
	return ok
}
