// Package pdf implementa la generación del Resumen de Estimado en PDF,
// pensado para el técnico en campo y para archivar junto al trabajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Licencia  │  N° Estimado + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / NIT / Código                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: campos relevantes del payload del estimado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRECIOS: tiers good/better/best (override si existe)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HANDOFF: técnico asignado + estado + bloqueo de precio      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/fieldserve/fieldserve-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.EstimatePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateEstimatePDF genera el PDF y devuelve sus bytes. handoff y override
// pueden ser nil; sus secciones se omiten o muestran "sin datos".
func (g *MarotoPDFGenerator) GenerateEstimatePDF(
	estimate *entity.Estimate,
	company *entity.Company,
	handoff *entity.Handoff,
	override *entity.PricingOverride,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Estimado", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(estimate, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Detalle del estimado (payload plano, ordenado por clave)
	m.AddRows(payloadHeaderRow())
	for _, r := range payloadRows(estimate) {
		m.AddRows(r)
	}

	// Tiers de precio
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range pricingRows(override) {
		m.AddRows(r)
	}

	// Estado del handoff
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range handoffRows(handoff) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + licencia (izq) y N° de estimado + fecha (der).
func headerRow(estimate *entity.Estimate, company *entity.Company) core.Row {
	fecha := estimate.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Licencia: "+nonEmpty(company.LicenseNumber, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE ESTIMADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(estimate.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// companyRow: datos de la empresa contratista.
func companyRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE LA EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   NIT: %s   |   Código: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.TaxID, "—"),
				nonEmpty(company.CompanyCode, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// payloadHeaderRow: cabecera de la tabla de detalle.
func payloadHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Campo", 4, align.Left),
		h("Valor", 8, align.Left),
	)
}

// payloadRows: una fila por campo del payload, en orden alfabético para que
// el mismo estimado produzca siempre el mismo documento.
func payloadRows(estimate *entity.Estimate) []core.Row {
	keys := make([]string, 0, len(estimate.Payload))
	for k := range estimate.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]core.Row, 0, len(keys))
	for _, k := range keys {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				humanizeKey(k),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(8).Add(text.New(
				fmt.Sprintf("%v", estimate.Payload[k]),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	if len(result) == 0 {
		result = append(result, row.New(7).Add(col.New(12).Add(
			text.New("Sin detalle capturado.", props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 1,
			}),
		)))
	}
	return result
}

// pricingRows: los tres tiers good/better/best. Si hay override, ése es el
// precio vigente y se muestra con sus notas de varianza.
func pricingRows(override *entity.PricingOverride) []core.Row {
	title := "PRECIOS CALCULADOS"
	if override != nil {
		title = "PRECIOS AJUSTADOS POR LA EMPRESA"
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if override == nil || override.CustomPricing == nil {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Aplican los rangos calculados del estimado.", props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 1,
			}),
		)))
		return rows
	}

	tiers := override.CustomPricing.Tiers()
	for _, name := range []string{entity.TierGood, entity.TierBetter, entity.TierBest} {
		t, ok := tiers[name]
		if !ok {
			continue
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(
				strings.ToUpper(name),
				props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1},
			)),
			col.New(8).Add(text.New(
				fmt.Sprintf("$%s — $%s", formatMoney(t.Min.StringFixed(0)), formatMoney(t.Max.StringFixed(0))),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
		))
	}

	if override.PricingVarianceNotes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Notas: "+override.PricingVarianceNotes, props.Text{
				Size: 7, Color: colorGray, Top: 2, Left: 1,
			}),
		)))
	}
	return rows
}

// handoffRows: técnico asignado, estado y bloqueo de precio.
func handoffRows(handoff *entity.Handoff) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ESTADO DE CAMPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if handoff == nil {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Este estimado aún no fue transferido a un técnico.", props.Text{
				Size: 8, Color: colorGray, Top: 2, Left: 1,
			}),
		)))
		return rows
	}

	lock := "precio libre"
	if handoff.LockedPricing {
		lock = "precio bloqueado"
	}
	rows = append(rows, row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Técnico: %s   |   Estado: %s   |   %s",
			shortID(handoff.HandedOffTo), handoff.Status, lock,
		), props.Text{Size: 8, Top: 2, Left: 1}),
		text.New("Transferido el "+handoff.HandedOffAt.Format("02/01/2006 15:04"), props.Text{
			Size: 7, Color: colorGray, Top: 7, Left: 1,
		}),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta un UUID a su primer bloque para mostrarlo como referencia.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return id
}

// humanizeKey convierte "system_type" en "System type".
func humanizeKey(k string) string {
	k = strings.ReplaceAll(k, "_", " ")
	if k == "" {
		return k
	}
	return strings.ToUpper(k[:1]) + k[1:]
}

// formatMoney agrega separadores de miles a un entero en texto.
func formatMoney(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
