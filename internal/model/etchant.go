package model

// EtchantCategory classifies how broadly an etchant applies
type EtchantCategory string

const (
	EtchantMaterialSpecific EtchantCategory = "material-specific" // Formulated for one alloy family
	EtchantSpecialty        EtchantCategory = "specialty"         // Targets a specific feature or technique
	EtchantGeneral          EtchantCategory = "general"           // General-purpose reagent
)

// ApplicationMethod describes how the etchant is applied to the sample
type ApplicationMethod string

const (
	MethodChemical     ApplicationMethod = "chemical"
	MethodElectrolytic ApplicationMethod = "electrolytic"
	MethodTint         ApplicationMethod = "tint"
	MethodThermal      ApplicationMethod = "thermal"
)

// Etchant is a chemical reagent record from the catalog
type Etchant struct {
	ID                    string            `json:"id" yaml:"id"`
	Name                  string            `json:"name" yaml:"name"`
	Slug                  string            `json:"slug,omitempty" yaml:"slug,omitempty"`
	AlternativeNames      []string          `json:"alternative_names,omitempty" yaml:"alternative_names,omitempty"`
	Category              EtchantCategory   `json:"category,omitempty" yaml:"category,omitempty"`
	Composition           string            `json:"composition,omitempty" yaml:"composition,omitempty"`
	Concentration         string            `json:"concentration,omitempty" yaml:"concentration,omitempty"`
	ApplicationMethod     ApplicationMethod `json:"application_method,omitempty" yaml:"application_method,omitempty"`
	TypicalTimeSeconds    int               `json:"typical_time_seconds,omitempty" yaml:"typical_time_seconds,omitempty"`
	TemperatureCelsius    float64           `json:"temperature_celsius,omitempty" yaml:"temperature_celsius,omitempty"`
	Voltage               float64           `json:"voltage,omitempty" yaml:"voltage,omitempty"`
	Reveals               string            `json:"reveals,omitempty" yaml:"reveals,omitempty"`
	TypicalResults        string            `json:"typical_results,omitempty" yaml:"typical_results,omitempty"`
	CompatibleMaterials   []string          `json:"compatible_materials,omitempty" yaml:"compatible_materials,omitempty"`
	IncompatibleMaterials []string          `json:"incompatible_materials,omitempty" yaml:"incompatible_materials,omitempty"`
	RelatedMaterialIDs    []string          `json:"related_material_ids,omitempty" yaml:"related_material_ids,omitempty"`
	ASTMReferences        []string          `json:"astm_references,omitempty" yaml:"astm_references,omitempty"`
	Featured              bool              `json:"featured" yaml:"featured"`
	PaceProductAvailable  bool              `json:"pace_product_available" yaml:"pace_product_available"`
	ProductURL            string            `json:"product_url,omitempty" yaml:"product_url,omitempty"`
	Hazards               []string          `json:"hazards,omitempty" yaml:"hazards,omitempty"`
	PPERequired           []string          `json:"ppe_required,omitempty" yaml:"ppe_required,omitempty"`
	SafetyNotes           string            `json:"safety_notes,omitempty" yaml:"safety_notes,omitempty"`
	ApplicationNotes      string            `json:"application_notes,omitempty" yaml:"application_notes,omitempty"`
	PreparationNotes      string            `json:"preparation_notes,omitempty" yaml:"preparation_notes,omitempty"`
	StorageNotes          string            `json:"storage_notes,omitempty" yaml:"storage_notes,omitempty"`
	AlternativeEtchants   []string          `json:"alternative_etchants,omitempty" yaml:"alternative_etchants,omitempty"`
	Status                string            `json:"status,omitempty" yaml:"status,omitempty"`
}

// IsPublished reports whether the etchant should be offered to users.
// Records without a status are treated as published.
func (e Etchant) IsPublished() bool {
	return e.Status == "" || e.Status == StatusPublished
}
