package profile

// ApoE4Status es la zigosidad del alelo ApoE ε4 del paciente.
// @Enum Not Tested, Homozygote (e4/e4), Heterozygote (e4/e3 or e4/e2), Non-carrier
type ApoE4Status string

const (
	ApoE4NotTested    ApoE4Status = "Not Tested"
	ApoE4Homozygote   ApoE4Status = "Homozygote (e4/e4)"
	ApoE4Heterozygote ApoE4Status = "Heterozygote (e4/e3 or e4/e2)"
	ApoE4NonCarrier   ApoE4Status = "Non-carrier"
)

// NotAssessed es el valor por defecto de los campos de riesgo.
const NotAssessed = "Not Assessed"

// Profile son los escalares del paciente de la sesión. Los porcentajes de
// riesgo son texto opaco ingresado por el operador; no se derivan del log
// de evaluaciones ARIA.
type Profile struct {
	SessionID string

	CMSRegistryID string
	ApoE4Status   ApoE4Status

	OverallAriaRisk     string
	SymptomaticAriaRate string
	SeriousEventRate    string
}

// Defaults es el perfil con el que arranca una sesión nueva.
func Defaults(sessionID string) Profile {
	return Profile{
		SessionID:           sessionID,
		ApoE4Status:         ApoE4NotTested,
		OverallAriaRisk:     NotAssessed,
		SymptomaticAriaRate: NotAssessed,
		SeriousEventRate:    NotAssessed,
	}
}
