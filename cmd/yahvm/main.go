// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yahvm/yahvm/cpu"
	"github.com/yahvm/yahvm/emulator"
	"github.com/yahvm/yahvm/translate"
)

func main() {
	var compile string
	var binary string
	var output string
	var save bool
	var disassemble bool
	var tickLimit int
	var lang string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&binary, "b", "", ".bin file to run")
	flag.StringVar(&output, "o", "", "Save the binary artifact to this file")
	flag.BoolVar(&save, "s", false, "Save only, do not execute")
	flag.BoolVar(&disassemble, "d", false, "Print the program disassembly")
	flag.IntVar(&tickLimit, "t", 0, "Tick limit, 0 for unlimited")
	flag.StringVar(&lang, "l", "", "Message language, defaults to the system locale")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.Use(lang)
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.TickLimit = tickLimit

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Or load an existing artifact.
	if len(binary) != 0 {
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()

		_, err = emu.Rom.ReadFrom(inf)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		emu.Program = cpu.NewProgram(emu.Rom.Data)
	}

	if disassemble {
		fmt.Print(emu.Program.Disassemble())
	}

	if len(output) != 0 {
		emu.Rom.Data = emu.Program.Binary()

		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		_, err = emu.Rom.WriteTo(ouf)
		if err != nil {
			ouf.Close()
			log.Fatalf("%v: %v", output, err)
		}
		err = ouf.Close()
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if !save {
		emu.Tape.Output = os.Stdout

		emu.Reset()
		err := emu.Run()
		if err != nil {
			log.Fatal(err)
		}

		if verbose {
			log.Printf("%v: %d ticks", os.Args[0], emu.Ticks())
		}
	}
}
