package models

// Tone is a presentation hint for a status badge
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneNeutral Tone = "neutral"
)

// StatusDescriptor is the display metadata for a status value
type StatusDescriptor struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Tone        Tone   `json:"tone"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

var projectStatusTable = map[ProjectStatus]StatusDescriptor{
	ProjectOpen: {
		Value: string(ProjectOpen),
		Label: "Aberto para inscrição",
		Tone:  ToneSuccess,
	},
	ProjectInProgress: {
		Value: string(ProjectInProgress),
		Label: "Em andamento",
		Tone:  ToneInfo,
	},
	ProjectFinished: {
		Value: string(ProjectFinished),
		Label: "Finalizado",
		Tone:  ToneNeutral,
	},
}

var enrollmentStatusTable = map[EnrollmentStatus]StatusDescriptor{
	EnrollmentApproved: {
		Value:       string(EnrollmentApproved),
		Label:       "Aprovado",
		Tone:        ToneSuccess,
		Icon:        "check-circle",
		Description: "Sua inscrição foi aprovada pelo coordenador. Você pode participar do projeto.",
	},
	EnrollmentPending: {
		Value:       string(EnrollmentPending),
		Label:       "Aguardando",
		Tone:        ToneWarning,
		Icon:        "alert-circle",
		Description: "Sua inscrição está sendo analisada pelo coordenador do projeto.",
	},
	EnrollmentRejected: {
		Value:       string(EnrollmentRejected),
		Label:       "Rejeitado",
		Tone:        ToneDanger,
		Icon:        "x-circle",
		Description: "Sua inscrição não foi aprovada. Entre em contato com o coordenador para mais informações.",
	},
}

// DescribeProjectStatus returns the display metadata for a project status.
// Unknown values are described by their raw value with a neutral tone.
func DescribeProjectStatus(s ProjectStatus) StatusDescriptor {
	if d, ok := projectStatusTable[s]; ok {
		return d
	}
	return StatusDescriptor{Value: string(s), Label: string(s), Tone: ToneNeutral}
}

// DescribeEnrollmentStatus returns the display metadata for an enrollment status
func DescribeEnrollmentStatus(s EnrollmentStatus) StatusDescriptor {
	if d, ok := enrollmentStatusTable[s]; ok {
		return d
	}
	return StatusDescriptor{Value: string(s), Label: string(s), Tone: ToneNeutral}
}

// ProjectStatusOptions returns descriptors for every project status in lifecycle order
func ProjectStatusOptions() []StatusDescriptor {
	out := make([]StatusDescriptor, 0, len(ProjectStatuses))
	for _, s := range ProjectStatuses {
		out = append(out, DescribeProjectStatus(s))
	}
	return out
}

// EnrollmentStatusOptions returns descriptors for every enrollment status
func EnrollmentStatusOptions() []StatusDescriptor {
	out := make([]StatusDescriptor, 0, len(EnrollmentStatuses))
	for _, s := range EnrollmentStatuses {
		out = append(out, DescribeEnrollmentStatus(s))
	}
	return out
}
