package monitor_test

import (
	"hadydotai/wordvm/machine"
	"hadydotai/wordvm/monitor"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseCommand", func() {
	It("should parse a bare command", func() {
		cmd, err := monitor.ParseCommand("regs")
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Name).To(Equal("regs"))
		Expect(cmd.Args).To(BeEmpty())
	})

	It("should parse register and number arguments", func() {
		cmd, err := monitor.ParseCommand("SET r7 0x7fff")
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd.Name).To(Equal("set"))
		Expect(cmd.Args).To(HaveLen(2))

		idx, err := cmd.Args[0].RegisterIndex()
		Expect(err).NotTo(HaveOccurred())
		Expect(idx).To(Equal(7))

		v, err := cmd.Args[1].Word()
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(machine.Word(0x7fff)))
	})

	It("should read leading zeros as decimal", func() {
		cmd, err := monitor.ParseCommand("poke 010 0X1f")
		Expect(err).NotTo(HaveOccurred())

		addr, err := cmd.Args[0].Word()
		Expect(err).NotTo(HaveOccurred())
		Expect(addr).To(Equal(machine.Word(10)))

		v, err := cmd.Args[1].Word()
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(machine.Word(31)))
	})

	It("should reject a register where a number is expected", func() {
		cmd, err := monitor.ParseCommand("mem r1")
		Expect(err).NotTo(HaveOccurred())
		_, err = cmd.Args[0].Word()
		Expect(err).To(MatchError(ContainSubstring("expected a number")))
	})

	It("should reject numbers wider than a word", func() {
		cmd, err := monitor.ParseCommand("poke 1 70000")
		Expect(err).NotTo(HaveOccurred())
		_, err = cmd.Args[1].Word()
		Expect(err).To(HaveOccurred())
	})

	It("should fail on input it cannot tokenize", func() {
		_, err := monitor.ParseCommand("step $")
		Expect(err).To(MatchError(ContainSubstring("parse error")))
	})
})
