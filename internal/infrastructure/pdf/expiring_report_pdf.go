// Package pdf genera el reporte imprimible de socios con puntos por vencer.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + título     │  Fecha de referencia + cortes │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: CPF | Nome | Telefone | A expirar | Saldo | Venc.    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: cuentas evaluadas / socios / puntos por vencer     │
//	│  OMITIDAS: CPF enmascarado + motivo                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/message"
	"github.com/jhoicas/aviso-pontos/internal/application/ports"
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateExpiringReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateExpiringReportPDF(
	_ context.Context,
	storeName string,
	report *dto.ExpiringReportDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pontos a expirar", true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(storeName, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Customers)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	if len(report.Skipped) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(skippedRows(report.Skipped)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: tienda + título (izq) y fechas de corte (der).
func headerRow(storeName string, report *dto.ExpiringReportDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Sócios com pontos a expirar", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Referência: "+brDate(report.ReferenceDate), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Lotes de %s a %s", brDate(report.ExpirationCutoff), brDate(report.ExpiringSoonCutoff)), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("CPF", 2, align.Left),
		h("Nome", 3, align.Left),
		h("Telefone", 2, align.Left),
		h("A expirar", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Vencimento", 2, align.Center),
		h("R$", 1, align.Right),
	)
}

// tableRows: una fila por socio, en el orden del reporte.
func tableRows(customers []dto.ExpiringCustomerDTO) []core.Row {
	result := make([]core.Row, 0, len(customers))
	for _, c := range customers {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(c.CPFMasked, 2, align.Left),
			cell(nonEmpty(c.Name, "-"), 3, align.Left),
			cell(nonEmpty(c.Phone, "-"), 2, align.Left),
			cell(message.FormatPoints(c.ExpiringSoonCredits), 1, align.Right),
			cell(message.FormatPoints(c.NetBalance), 1, align.Right),
			cell(c.NextExpiration.Format("02/01/2006"), 2, align.Center),
			cell(message.FormatPoints(c.RewardValue), 1, align.Right),
		))
	}
	return result
}

func totalsRow(report *dto.ExpiringReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(4).Add(
			label("Contas avaliadas:"),
			label("Sócios:"),
			label("Pontos a expirar:"),
		),
		col.New(2).Add(
			value(message.FormatPoints(decimalInt(report.AccountsEvaluated))),
			value(message.FormatPoints(decimalInt(len(report.Customers)))),
			value(message.FormatPoints(report.TotalExpiringPoints)),
		),
	)
}

func skippedRows(skipped []dto.SkippedAccountDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("Contas não avaliadas", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
	}
	for _, s := range skipped {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(s.CPFMasked, props.Text{Size: 7, Color: colorGray, Left: 1})),
			col.New(9).Add(text.New(s.Reason, props.Text{Size: 7, Color: colorGray})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// brDate convierte "2006-01-02" a "02/01/2006"; si no parsea devuelve el valor original.
func brDate(s string) string {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

func decimalInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
