package render

import (
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"tabloide-mp/utils"
)

// OrderLine is one row of the sample sales order
type OrderLine struct {
	Code        string
	Description string
	Quantity    int64
	Price       decimal.Decimal
}

// Subtotal is quantity times unit price
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// ExampleOrderLines are the items of the sample order shown on the home page
func ExampleOrderLines() []OrderLine {
	line := func(code, desc string, qty int64, price string) OrderLine {
		return OrderLine{Code: code, Description: desc, Quantity: qty, Price: decimal.RequireFromString(price)}
	}
	return []OrderLine{
		line("P001", "Produto A", 2, "19.90"),
		line("P002", "Produto B", 1, "49.90"),
		line("P003", "Produto C", 3, "9.90"),
		line("P004", "Produto D", 1, "129.90"),
		line("P005", "Produto E", 6, "129.90"),
		line("P006", "Produto F", 3, "129.90"),
		line("P007", "Produto G", 1, "129.90"),
		line("P008", "Produto H", 4, "129.90"),
		line("P009", "Produto I", 1, "129.90"),
		line("P010", "Produto J", 3, "129.90"),
		line("P011", "Produto K", 1, "129.90"),
	}
}

var orderTmpl = template.Must(template.New("order").Funcs(template.FuncMap{
	"brl": utils.FormatBRL,
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Pedido de Venda</title>
<style>
@page { size: A4; margin: 36pt; }
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; margin: 0; }
header { display: flex; justify-content: space-between; margin-bottom: 24pt; }
h1 { font-size: 16pt; margin: 0; }
h2 { font-size: 18pt; margin: 0; text-align: right; }
h3 { font-size: 12pt; margin: 0 0 4pt 0; }
table { border-collapse: collapse; margin-top: 18pt; }
th, td { padding: 3pt 6pt; }
th { border-bottom: 1px solid #000; }
.code { width: 48pt; text-align: left; }
.desc { width: 248pt; text-align: left; max-width: 248pt; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.num { width: 68pt; text-align: right; }
tfoot td { border-top: 1px solid #000; font-weight: bold; font-size: 11pt; padding-top: 6pt; }
footer { position: fixed; bottom: 0; font-size: 9pt; }
</style>
</head>
<body>
<header>
<div><h1>TabloideMP</h1><div>CNPJ: 00.000.000/0000-00 • contato@tabloidemp.local</div></div>
<div><h2>Pedido de Venda</h2><div>Nº PED-0001 • {{.Date.Format "02/01/2006"}}</div></div>
</header>
<section>
<h3>Cliente</h3>
<div>Nome: Cliente Exemplo LTDA</div>
<div>Documento: 123.456.789-00</div>
<div>Endereço: Rua Exemplo, 123 - Centro - Cidade/UF</div>
</section>
<table>
<thead><tr><th class="code">Cód.</th><th class="desc">Descrição</th><th class="num">Qtde</th><th class="num">Preço</th><th class="num">Subtotal</th></tr></thead>
<tbody>
{{- range .Lines}}
<tr><td class="code">{{.Code}}</td><td class="desc">{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{brl .Price}}</td><td class="num">{{brl .Subtotal}}</td></tr>
{{- end}}
</tbody>
<tfoot><tr><td colspan="4" class="num">Total:</td><td class="num">{{brl .Total}}</td></tr></tfoot>
</table>
<footer>Observações: Este é um pedido de exemplo gerado automaticamente.</footer>
</body>
</html>
`))

// WriteOrderHTML renders a sample sales order dated date
func WriteOrderHTML(w io.Writer, date time.Time, lines []OrderLine) error {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return orderTmpl.Execute(w, map[string]any{
		"Date":  date,
		"Lines": lines,
		"Total": total,
	})
}
