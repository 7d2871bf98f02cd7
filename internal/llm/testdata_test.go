package llm

import "github.com/ppiankov/etchant/internal/model"

func sampleReport() model.Report {
	return model.Report{
		Material: model.Material{
			ID:          "mat-1018",
			Name:        "AISI 1018",
			Category:    "Carbon Steel",
			Composition: "0.18C 0.75Mn Fe bal.",
		},
		CategoryKey: "carbon-steel",
		Filters: model.Filters{
			Purpose:            model.PurposeGrainBoundaries,
			ApplicationContext: model.ContextQualityControl,
		},
		Matches: []model.RankedMatch{
			{
				EtchantMatch: model.EtchantMatch{
					Etchant:  model.Etchant{ID: "et-nital-2", Name: "Nital 2%"},
					Score:    330,
					Reasons:  []string{"Compatible with carbon steel", "Commonly used for AISI 1018"},
					Warnings: []string{"Flammable when mixed in large volumes"},
				},
				Rank:        1,
				Percentage:  55,
				PurchaseURL: "https://shop.example.com/nital",
			},
			{
				EtchantMatch: model.EtchantMatch{
					Etchant: model.Etchant{ID: "et-picral", Name: "Picral"},
					Score:   150,
					Reasons: []string{"Compatible with carbon steel"},
				},
				Rank:       2,
				Percentage: 25,
			},
		},
	}
}
