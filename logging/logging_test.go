package logging

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logging", func() {
	var sink *bytes.Buffer

	BeforeEach(func() {
		sink = &bytes.Buffer{}
	})

	AfterEach(func() {
		logger = nil
	})

	It("should drop everything at level none", func() {
		SetupWriter(LogLevelNone, sink)
		Log(LogLevelInfo, "hello")
		LogErr(errors.New("boom"), "failed")
		Expect(sink.Len()).To(BeZero())
		Expect(Enabled(LogLevelInfo)).To(BeFalse())
	})

	It("should filter debug records at level info", func() {
		SetupWriter(LogLevelInfo, sink)
		Log(LogLevelDebug, "hidden")
		Log(LogLevelInfo, "shown", "pc", 12)
		Expect(sink.String()).NotTo(ContainSubstring("hidden"))
		Expect(sink.String()).To(ContainSubstring("msg=shown pc=12"))
		Expect(Enabled(LogLevelDebug)).To(BeFalse())
	})

	It("should only trace at level trace", func() {
		SetupWriter(LogLevelDebug, sink)
		Expect(Enabled(LogLevelDebug)).To(BeTrue())
		Expect(Enabled(LogLevelTrace)).To(BeFalse())

		SetupWriter(LogLevelTrace, sink)
		Log(LogLevelTrace, "exec", "inst", "noop")
		Expect(sink.String()).To(ContainSubstring("level=TRACE msg=exec inst=noop"))
	})

	It("should attach the error to error records", func() {
		SetupWriter(LogLevelInfo, sink)
		LogErr(errors.New("boom"), "failed", "file", "prog.bin")
		Expect(sink.String()).To(ContainSubstring(`level=ERROR msg=failed error=boom file=prog.bin`))
	})

	It("should refuse to log at level none", func() {
		SetupWriter(LogLevelInfo, sink)
		Expect(func() { Log(LogLevelNone, "x") }).To(Panic())
	})
})
