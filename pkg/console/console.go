package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/diillson/covid-stats-dashboard-go/internal/shared/types"
)

// trendBarWidth is the length, in cells, of the longest terminal bar.
const trendBarWidth = 40

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Cores predefinidas para uso consistente
var (
	BoldRed     = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightCyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
	BrightBlue  = color.New(color.FgBlue, color.Bold).SprintFunc()
)

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

// ProgressWithTotal cria uma barra de progresso com título e total de passos.
func (c *Console) ProgressWithTotal(title string, total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &progressHandle{bar: bar}
}

func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

func (h *progressHandle) Stop() {
	if h.bar != nil {
		h.bar.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela. Floats are printed with two decimals.
func (t *Table) AddRow(cells ...interface{}) {
	processed := make([]string, len(cells))
	for i, cell := range cells {
		switch v := cell.(type) {
		case float64:
			processed[i] = FormatNumber(v)
		default:
			processed[i] = fmt.Sprint(v)
		}
	}
	t.rows = append(t.rows, processed)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	tableData = append(tableData, t.rows...)

	rendered, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData).
		Srender()
	return rendered
}

// DisplayTrendBars draws one horizontal bar per value, scaled to the largest one,
// with the change from the previous bar. Increases are red and decreases green.
func (c *Console) DisplayTrendBars(title string, bars []types.BarValue) {
	if len(bars) == 0 {
		pterm.Warning.Printfln("%s: nothing to display", title)
		return
	}

	maxValue := 0.0
	for _, b := range bars {
		if b.Value > maxValue {
			maxValue = b.Value
		}
	}
	if maxValue <= 0 {
		pterm.Warning.Printfln("%s: all values are zero", title)
		return
	}

	tableData := pterm.TableData{{"Period", "Value", "", "Change"}}
	for i, b := range bars {
		bar := strings.Repeat("█", barLength(b.Value, maxValue))
		barText := pterm.FgBlue.Sprint(bar)
		change := ""

		if i > 0 {
			pct, ok := PercentChange(bars[i-1].Value, b.Value)
			switch {
			case !ok:
				change = pterm.FgYellow.Sprint("N/A")
				barText = pterm.FgYellow.Sprint(bar)
			case pct > 0.005:
				change = pterm.FgRed.Sprintf("+%.2f%%", pct)
				barText = pterm.FgRed.Sprint(bar)
			case pct < -0.005:
				change = pterm.FgGreen.Sprintf("%.2f%%", pct)
				barText = pterm.FgGreen.Sprint(bar)
			default:
				change = pterm.FgYellow.Sprint("0%")
			}
		}

		tableData = append(tableData, []string{b.Label, FormatNumber(b.Value), barText, change})
	}

	rendered, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(rendered)

	fmt.Println("\n" + panel)
}

func barLength(v, maxValue float64) int {
	if v <= 0 || maxValue <= 0 {
		return 0
	}
	n := int(v / maxValue * trendBarWidth)
	if n == 0 {
		n = 1
	}
	return n
}

// PercentChange returns the relative change from prev to cur in percent.
// It is undefined when prev is zero and cur is not.
func PercentChange(prev, cur float64) (float64, bool) {
	if prev == 0 {
		if cur == 0 {
			return 0, true
		}
		return 0, false
	}
	return (cur - prev) / prev * 100, true
}

// FormatNumber prints whole numbers without decimals and everything else with two.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
