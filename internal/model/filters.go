package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPurpose = errors.New("invalid purpose")
	ErrInvalidContext = errors.New("invalid application context")
)

// Purpose is the microstructural feature the user wants the etchant to reveal
type Purpose string

const (
	PurposeGeneral         Purpose = "general"
	PurposeGrainBoundaries Purpose = "grain-boundaries"
	PurposePhases          Purpose = "phases"
	PurposeCarbides        Purpose = "carbides"
	PurposeMartensite      Purpose = "martensite"
	PurposePearlite        Purpose = "pearlite"
	PurposeDendrites       Purpose = "dendrites"
	PurposeWeldStructure   Purpose = "weld-structure"
	PurposeTwins           Purpose = "twins"
	PurposeNodularity      Purpose = "nodularity"
	PurposePriorAustenite  Purpose = "prior-austenite"
	PurposeDecarburization Purpose = "decarburization"
)

// Option is a selectable filter value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var purposeLabels = []Option{
	{string(PurposeGeneral), "General microstructure"},
	{string(PurposeGrainBoundaries), "Grain boundaries"},
	{string(PurposePhases), "Phase distinction"},
	{string(PurposeCarbides), "Carbides"},
	{string(PurposeMartensite), "Martensite"},
	{string(PurposePearlite), "Pearlite"},
	{string(PurposeDendrites), "Dendrites and segregation"},
	{string(PurposeWeldStructure), "Weld structure / HAZ"},
	{string(PurposeTwins), "Twins"},
	{string(PurposeNodularity), "Graphite nodularity"},
	{string(PurposePriorAustenite), "Prior austenite grains"},
	{string(PurposeDecarburization), "Decarburization / case depth"},
}

// PurposeOptions returns the purpose selector options in display order
func PurposeOptions() []Option {
	out := make([]Option, len(purposeLabels))
	copy(out, purposeLabels)
	return out
}

// Label returns the display label of the purpose
func (p Purpose) Label() string {
	for _, o := range purposeLabels {
		if o.Value == string(p) {
			return o.Label
		}
	}
	return string(p)
}

// IsFilter reports whether the purpose narrows the ranking (anything but empty or general)
func (p Purpose) IsFilter() bool {
	return p != "" && p != PurposeGeneral
}

// ParsePurpose validates a purpose value. An empty string means no filter.
func ParsePurpose(s string) (Purpose, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, o := range purposeLabels {
		if o.Value == s {
			return Purpose(s), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPurpose, s)
}

// ApplicationContext is the workflow the recommendation is for
type ApplicationContext string

const (
	ContextGeneral                   ApplicationContext = "general"
	ContextQualityControl            ApplicationContext = "quality-control"
	ContextFailureAnalysis           ApplicationContext = "failure-analysis"
	ContextHeatTreatmentVerification ApplicationContext = "heat-treatment-verification"
	ContextWeldingAnalysis           ApplicationContext = "welding-analysis"
	ContextResearch                  ApplicationContext = "research"
)

var contextLabels = []Option{
	{string(ContextGeneral), "General laboratory use"},
	{string(ContextQualityControl), "Quality control"},
	{string(ContextFailureAnalysis), "Failure analysis"},
	{string(ContextHeatTreatmentVerification), "Heat treatment verification"},
	{string(ContextWeldingAnalysis), "Welding analysis"},
	{string(ContextResearch), "Research and development"},
}

// ContextOptions returns the application-context selector options in display order
func ContextOptions() []Option {
	out := make([]Option, len(contextLabels))
	copy(out, contextLabels)
	return out
}

// Label returns the display label of the context
func (c ApplicationContext) Label() string {
	for _, o := range contextLabels {
		if o.Value == string(c) {
			return o.Label
		}
	}
	return string(c)
}

// ParseContext validates an application context value. An empty string means no context.
func ParseContext(s string) (ApplicationContext, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, o := range contextLabels {
		if o.Value == s {
			return ApplicationContext(s), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContext, s)
}
