package normalizer

// Columns names the raw workbook headers the normalizer reads from.
type Columns struct {
	SaleDate       string `json:"sale-date" mapstructure:"sale-date" yaml:"sale-date"`
	Points         string `json:"points" mapstructure:"points" yaml:"points"`
	TotalValue     string `json:"total-value" mapstructure:"total-value" yaml:"total-value"`
	OrderID        string `json:"order-id" mapstructure:"order-id" yaml:"order-id"`
	BuyerID        string `json:"buyer-id" mapstructure:"buyer-id" yaml:"buyer-id"`
	ProfessionalID string `json:"professional-id" mapstructure:"professional-id" yaml:"professional-id"`
	Store          string `json:"store" mapstructure:"store" yaml:"store"`
	Segment        string `json:"segment" mapstructure:"segment" yaml:"segment"`
	Season         string `json:"season" mapstructure:"season" yaml:"season"`
	RegistrantID   string `json:"registrant-id" mapstructure:"registrant-id" yaml:"registrant-id"`
}

func DefaultColumns() Columns {
	return Columns{
		SaleDate:       "Data da Venda",
		Points:         "Pontos",
		TotalValue:     "Valor Total",
		OrderID:        "NF/Pedido",
		BuyerID:        "CPF/CNPJ",
		ProfessionalID: "Especificador/Empresa",
		Store:          "Loja",
		Segment:        "Segmento",
		Season:         "Numero Temporada",
		RegistrantID:   "CPF",
	}
}

// WithDefaults fills every empty column name with its default.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.SaleDate, d.SaleDate)
	fill(&c.Points, d.Points)
	fill(&c.TotalValue, d.TotalValue)
	fill(&c.OrderID, d.OrderID)
	fill(&c.BuyerID, d.BuyerID)
	fill(&c.ProfessionalID, d.ProfessionalID)
	fill(&c.Store, d.Store)
	fill(&c.Segment, d.Segment)
	fill(&c.Season, d.Season)
	fill(&c.RegistrantID, d.RegistrantID)
	return c
}
