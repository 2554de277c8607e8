package logging_test

import (
	"bytes"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eelift/internal/logging"
)

var _ = Describe("Logger", func() {
	It("should parse levels with an info default", func() {
		Expect(logging.ParseLevel("debug")).To(Equal(log.DebugLevel))
		Expect(logging.ParseLevel("error")).To(Equal(log.ErrorLevel))
		Expect(logging.ParseLevel("verbose")).To(Equal(log.InfoLevel))
	})

	It("should write prefixed key/value records", func() {
		GinkgoT().Setenv("EEDIS_LOG_PREFIX", "test ")
		GinkgoT().Setenv("EEDIS_LOG_LEVEL", "info")

		var buf bytes.Buffer
		lg := logging.NewLoggerWithWriter(&buf)
		lg.Info("loaded", "segments", 2)
		lg.Debug("hidden")

		out := buf.String()
		Expect(out).To(ContainSubstring("test"))
		Expect(out).To(ContainSubstring("loaded"))
		Expect(out).To(ContainSubstring("segments=2"))
		Expect(out).NotTo(ContainSubstring("hidden"))
		Expect(lg.Close()).To(Succeed())
	})
})
