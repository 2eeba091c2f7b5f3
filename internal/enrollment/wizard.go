package enrollment

// Step is a page of the enrollment form
type Step int

const (
	StepDetails Step = iota + 1 // Fill in personal data and motivation
	StepReview                  // Confirm the data before sending
	StepDone                    // Submission acknowledged
)

// Steps lists the form pages in order
var Steps = []Step{StepDetails, StepReview, StepDone}

type stepText struct {
	title       string
	description string
}

var stepTexts = map[Step]stepText{
	StepDetails: {"Inscrição no Projeto", "Preencha seus dados para se inscrever no projeto"},
	StepReview:  {"Confirmar Inscrição", "Revise suas informações antes de enviar"},
	StepDone:    {"Inscrição Concluída", "Sua inscrição foi enviada com sucesso"},
}

// IsValid reports whether s is one of the form pages
func (s Step) IsValid() bool {
	return s >= StepDetails && s <= StepDone
}

// Title returns the dialog title for the step
func (s Step) Title() string {
	return stepTexts[s].title
}

// Description returns the dialog subtitle for the step
func (s Step) Description() string {
	return stepTexts[s].description
}

// StepState is how a step appears in the progress indicator
type StepState string

const (
	StepComplete StepState = "complete"
	StepCurrent  StepState = "current"
	StepUpcoming StepState = "upcoming"
)

// Wizard tracks the current page of the enrollment form.
// The zero value is not ready for use; call NewWizard.
type Wizard struct {
	step Step
}

// NewWizard starts a form on its first page
func NewWizard() *Wizard {
	return &Wizard{step: StepDetails}
}

// Current returns the current page
func (w *Wizard) Current() Step {
	return w.step
}

// Next advances one page. It reports false on the last page.
func (w *Wizard) Next() bool {
	if w.step >= StepDone {
		return false
	}
	w.step++
	return true
}

// Back returns to the previous page. It reports false on the first page.
func (w *Wizard) Back() bool {
	if w.step <= StepDetails {
		return false
	}
	w.step--
	return true
}

// GoTo jumps to s, reporting false when s is not a form page
func (w *Wizard) GoTo(s Step) bool {
	if !s.IsValid() {
		return false
	}
	w.step = s
	return true
}

// Reset returns to the first page
func (w *Wizard) Reset() {
	w.step = StepDetails
}

// State returns how s appears relative to the current page
func (w *Wizard) State(s Step) StepState {
	switch {
	case s < w.step:
		return StepComplete
	case s == w.step:
		return StepCurrent
	default:
		return StepUpcoming
	}
}

// Progress is one entry of the progress indicator
type Progress struct {
	Step  Step      `json:"step"`
	Title string    `json:"title"`
	State StepState `json:"state"`
}

// Progress returns the indicator for every page
func (w *Wizard) Progress() []Progress {
	out := make([]Progress, 0, len(Steps))
	for _, s := range Steps {
		out = append(out, Progress{Step: s, Title: s.Title(), State: w.State(s)})
	}
	return out
}
