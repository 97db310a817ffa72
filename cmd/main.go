package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/profile"

	"github.com/nevisdale/m6502/internal/cpu"
	"github.com/nevisdale/m6502/internal/loader"
	"github.com/nevisdale/m6502/internal/machine"
	"github.com/nevisdale/m6502/internal/ui"
)

const defaultOrigin = 0xe000

// LDX #$36, LDA $7471,X with $49 at $74A7
func sampleImage() *loader.Image {
	return &loader.Image{
		Vector: defaultOrigin,
		Segments: []loader.Segment{
			{Addr: 0x7471, Data: []uint8{0x24}},
			{Addr: 0x74a7, Data: []uint8{0x49}},
			{Addr: defaultOrigin, Data: []uint8{0xa2, 0x36, 0xbd, 0x71, 0x74}},
		},
	}
}

// parseAddr reads a hex address, with or without a $ or 0x prefix.
func parseAddr(s string) (uint16, error) {
	digits := strings.TrimSpace(s)
	digits = strings.TrimPrefix(digits, "$")
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func main() {
	romPath := flag.String("rom", "", "program image: .hex/.asm listing, .star script or raw binary (default: built-in sample)")
	originStr := flag.String("origin", "0xE000", "load address for listings and binaries, hex ($ or 0x prefix optional)")
	vectorStr := flag.String("vector", "", "reset vector in hex (default: the image vector)")
	cycles := flag.Int("cycles", 6, "cycle budget for the run")
	withUI := flag.Bool("ui", false, "open the debug monitor instead of a single run")
	disasm := flag.Bool("disasm", false, "print the disassembly of the loaded program")
	profileMode := flag.String("profile", "", "write a profile: cpu or mem")
	colorMode := flag.String("color", "auto", "highlight flags: auto, always or never")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		log.Fatalf("unknown profile mode %q\n", *profileMode)
	}

	origin, err := parseAddr(*originStr)
	if err != nil {
		log.Fatalf("couldn't parse origin: %s\n", err)
	}

	img := sampleImage()
	if *romPath != "" {
		img, err = loader.Open(*romPath, origin)
		if err != nil {
			log.Fatalf("couldn't load program: %s\n", err)
		}
	}
	if *vectorStr != "" {
		img.Vector, err = parseAddr(*vectorStr)
		if err != nil {
			log.Fatalf("couldn't parse vector: %s\n", err)
		}
	}

	m := machine.New()
	m.Load(img)

	if *disasm {
		printDisasm(m, img)
	}

	if *withUI {
		if err := ui.RunUI(ui.New(m)); err != nil {
			log.Fatalf("monitor stopped: %s\n", err)
		}
		return
	}

	color := machine.IsTerminal(os.Stdout)
	switch *colorMode {
	case "always":
		color = true
	case "never":
		color = false
	}

	fmt.Print("\nInitial register status\n")
	fmt.Print(machine.FormatStatus(m.DebugInfo().Registers, color))

	res, err := m.Run(*cycles)
	if err != nil && !errors.Is(err, cpu.ErrUnknownOpcode) {
		log.Fatalf("run failed: %s\n", err)
	}

	fmt.Print("Final register status\n")
	fmt.Print(machine.FormatStatus(res.Registers, color))
	fmt.Printf("cycles: %d of %d\n", res.Cycles, *cycles)
	if res.Halted {
		fmt.Printf("halted: %s\n", err)
	}
}

func printDisasm(m *machine.Machine, img *loader.Image) {
	for _, seg := range img.Segments {
		if len(seg.Data) == 0 {
			continue
		}
		end := uint16(int(seg.Addr) + len(seg.Data) - 1)
		if end < seg.Addr {
			end = 0xffff
		}
		lines := m.Disassemble(seg.Addr, end)
		addrs := make([]int, 0, len(lines))
		for addr := range lines {
			addrs = append(addrs, int(addr))
		}
		sort.Ints(addrs)
		for _, addr := range addrs {
			fmt.Println(lines[uint16(addr)])
		}
	}
}
