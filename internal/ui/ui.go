package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nevisdale/m6502/internal/machine"
)

// P - pause
// R - one step and stop
// C - next memory page
// X - previous memory page
// L - reload the program

type UI struct {
	machine *machine.Machine

	page uint8 // memory page shown next to the zero page
}

func New(m *machine.Machine) *UI {
	return &UI{
		machine: m,
		page:    uint8(m.DebugInfo().PC >> 8),
	}
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		ui.page++
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		ui.page--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.machine.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ui.machine.OneStepAndStop()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		ui.machine.Reload()
	}

	ui.machine.Tic()
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	info := ui.machine.DebugInfo()

	var infoStr strings.Builder
	fmt.Fprintf(&infoStr, " TPS: %0.0f\n", ebiten.ActualTPS())
	fmt.Fprintf(&infoStr, " STATE: %s", info.State)
	if info.Paused {
		infoStr.WriteString(" (PAUSED)")
	}
	infoStr.WriteString("\n")
	fmt.Fprintf(&infoStr, " STATUS: %s\n", info.StatusString())
	fmt.Fprintf(&infoStr, " PC: %04X\n", info.PC)
	fmt.Fprintf(&infoStr, " A: $%02X [%03d]", info.A, info.A)
	fmt.Fprintf(&infoStr, " X: $%02X [%03d]", info.X, info.X)
	fmt.Fprintf(&infoStr, " Y: $%02X [%03d]\n", info.Y, info.Y)
	fmt.Fprintf(&infoStr, " SP: $%02X\n", info.SP)
	fmt.Fprintf(&infoStr, " CYCLES: %d\n", info.TotalCycles)
	if info.Err != nil {
		fmt.Fprintf(&infoStr, " ERROR: %s\n", info.Err)
	}
	infoStr.WriteString("\n")

	// decoded every frame so stores into the program show up
	lines, cur := ui.machine.DisassembleAround(info.PC, disasmLines, disasmLines)
	for i, s := range lines {
		if i == cur {
			infoStr.WriteString("*" + s + "\n")
		} else {
			infoStr.WriteString(" " + s + "\n")
		}
	}

	vector.DrawFilledRect(screen, 0, 0, debugScreenWidth, screenHeight, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, infoStr.String(), 0, 0)

	ebitenutil.DebugPrintAt(screen, ui.dumpPage(0x00), debugScreenWidth+10, 0)
	ebitenutil.DebugPrintAt(screen, ui.dumpPage(ui.page), debugScreenWidth+10, screenHeight/2)
}

// dumpPage renders 256 bytes of memory as 16 rows of 16 bytes.
func (ui *UI) dumpPage(page uint8) string {
	var sb strings.Builder
	base := uint16(page) << 8
	fmt.Fprintf(&sb, " PAGE $%02X\n", page)
	for row := uint16(0); row < 16; row++ {
		addr := base | row<<4
		fmt.Fprintf(&sb, " %04X:", addr)
		for col := uint16(0); col < 16; col++ {
			fmt.Fprintf(&sb, " %02X", ui.machine.Peek(addr|col))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

const (
	disasmLines = 7

	debugScreenWidth = 286
	memScreenWidth   = 420
	screenWidth      = debugScreenWidth + memScreenWidth
	screenHeight     = 480
)

func (ui *UI) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

func RunUI(ui *UI) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("m6502 monitor")
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
