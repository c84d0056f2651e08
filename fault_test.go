package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hadydotai/wordvm/machine"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func words(ws ...machine.Word) []byte {
	b := make([]byte, 0, 2*len(ws))
	for _, w := range ws {
		b = append(b, byte(w), byte(w>>8))
	}
	return b
}

var _ = Describe("FaultReport", func() {
	var vm *machine.Machine

	BeforeEach(func() {
		vm = machine.New(nil)
	})

	It("should point at the faulting opcode", func() {
		Expect(vm.Load(words(21, 11, 32768, 5, 0))).To(Succeed())
		err := newFaultReport("prog.bin", vm.Run(), vm)

		Expect(errors.Is(err, machine.DivisionByZero)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("division by zero for mod at pc 1"))
		Expect(err.Error()).To(ContainSubstring("prog.bin @ pc 1 after 2 steps"))
		Expect(err.Error()).To(ContainSubstring("     1 | 11 32768 5 0"))
		Expect(err.Error()).To(ContainSubstring("mod needs a non-zero divisor"))
	})

	It("should point at the offending operand", func() {
		Expect(vm.Load(words(9, 32768, 40000, 1))).To(Succeed())
		err := newFaultReport("prog.bin", vm.Run(), vm)

		Expect(errors.Is(err, machine.InvalidOperand)).To(BeTrue())
		pointer := "       | " + strings.Repeat(" ", len("9 32768 ")) + "\x1b[1;31m^~~~~"
		Expect(err.Error()).To(ContainSubstring(pointer))
	})

	It("should describe image errors without a window", func() {
		err := newFaultReport("odd.bin", vm.Load([]byte{1, 2, 3}), vm)
		Expect(errors.Is(err, machine.MalformedImage)).To(BeTrue())
		Expect(err.(*FaultReport).Window).To(BeEmpty())
		Expect(err.Error()).To(ContainSubstring("\x1b[0m odd.bin\n"))
		Expect(err.Error()).NotTo(ContainSubstring(" @ pc "))
	})

	It("should wrap other errors with the file name", func() {
		err := newFaultReport("prog.bin", errors.New("boom"), vm)
		Expect(err).To(MatchError("prog.bin: boom"))
	})
})

var _ = Describe("openInputs", func() {
	It("should feed script lines before the interactive source", func() {
		dir := GinkgoT().TempDir()
		script := filepath.Join(dir, "walk.txt")
		Expect(os.WriteFile(script, []byte("north\nsouth\n"), 0644)).To(Succeed())

		echo := &bytes.Buffer{}
		src, closeInputs, err := openInputs([]string{script}, &stubSource{line: "look"}, echo)
		Expect(err).NotTo(HaveOccurred())
		defer closeInputs()

		var got []string
		for i := 0; i < 3; i++ {
			line, err := src.ReadLine()
			Expect(err).NotTo(HaveOccurred())
			got = append(got, line)
		}
		Expect(got).To(Equal([]string{"north", "south", "look"}))
		Expect(echo.String()).To(Equal("north\nsouth\n"))
	})

	It("should fail on a missing script", func() {
		_, _, err := openInputs([]string{"/nonexistent/script.txt"}, &stubSource{}, io.Discard)
		Expect(err).To(MatchError(ContainSubstring("failed to open input script")))
	})
})

type stubSource struct{ line string }

func (s *stubSource) ReadLine() (string, error) { return s.line, nil }
