package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("eedis", func() {
	var (
		tempDir string
		elfPath string
	)

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
		elfPath = filepath.Join(tempDir, "test.elf")
		writeELF(elfPath, base, program)
	})

	Describe("disasm", func() {
		It("should list the segment from the entry point", func() {
			out, err := run("disasm", elfPath)
			Expect(err).NotTo(HaveOccurred())

			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			Expect(lines).To(HaveLen(1 + len(program)))
			Expect(lines[0]).To(Equal("# test.elf  entry 0x00100000"))
			Expect(lines[1]).To(Equal("00100000:  24020005  li      $v0, 5"))
			Expect(lines[2]).To(ContainSubstring("beqz    $a0, 0x00100014  ; cond"))
			Expect(lines[4]).To(HaveSuffix("jal     0x00100020  ; call"))
			Expect(lines[6]).To(HaveSuffix("jr      $ra  ; ret"))
			Expect(lines[3]).To(HaveSuffix("nop"))
		})

		It("should print machine encodings with --raw", func() {
			out, err := run("disasm", elfPath, "--raw", "--count", "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("addiu   $v0, $zero, 5"))
		})

		It("should honour --start and --count", func() {
			out, err := run("disasm", elfPath, "--start", "0x00100014", "--count", "2")
			Expect(err).NotTo(HaveOccurred())

			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			Expect(lines).To(HaveLen(3))
			Expect(lines[1]).To(HavePrefix("00100014:"))
		})

		It("should cap listings at max_instructions", func() {
			confPath := filepath.Join(tempDir, "eedis.yaml")
			Expect(os.WriteFile(confPath, []byte("max_instructions: 3\n"), 0o644)).To(Succeed())

			out, err := run("disasm", elfPath, "--config", confPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(out, "\n")).To(Equal(4))
		})

		It("should reject an unknown start", func() {
			_, err := run("disasm", elfPath, "--start", "nowhere")
			Expect(err).To(MatchError(ContainSubstring("unknown start")))
		})

		It("should report a start outside the image", func() {
			_, err := run("disasm", elfPath, "--start", "0x00400000")
			Expect(err).To(MatchError(ContainSubstring("failed to read code at 0x00400000")))
		})

		It("should fail on a missing file", func() {
			_, err := run("disasm", filepath.Join(tempDir, "missing.elf"))
			Expect(err).To(MatchError(ContainSubstring("failed to open ELF file")))
		})
	})

	Describe("lift", func() {
		It("should print IR under each instruction", func() {
			out, err := run("lift", elfPath, "--count", "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(HavePrefix("00100000:  24020005  li      $v0, 5\n    $v0 = "))
		})

		It("should lift a branch with its delay slot", func() {
			out, err := run("lift", elfPath, "--start", "0x00100014", "--count", "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("00100014:"))
			Expect(out).To(ContainSubstring("00100018:"))
			Expect(out).To(ContainSubstring("return("))
		})

		It("should stop at the end of the image", func() {
			out, err := run("lift", elfPath, "--start", "0x00100020", "--count", "5")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("return("))
		})
	})

	Describe("cfg", func() {
		It("should print functions and blocks", func() {
			out, err := run("cfg", elfPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("entry  0x00100000  3 blocks"))
			Expect(out).To(ContainSubstring("  0x00100000-0x0010000c  cond    -> 0x00100014, 0x0010000c"))
			Expect(out).To(ContainSubstring("  0x0010000c-0x00100014  call    call 0x00100020 -> 0x00100014"))
			Expect(out).To(ContainSubstring("sub_00100020  0x00100020  1 blocks"))
		})

		It("should export YAML", func() {
			out, err := run("cfg", elfPath, "--yaml")
			Expect(err).NotTo(HaveOccurred())

			var doc map[string]any
			Expect(yaml.Unmarshal([]byte(out), &doc)).To(Succeed())
			Expect(doc["functions"]).To(HaveLen(2))
		})
	})

	Describe("decode", func() {
		It("should decode a word with its flow", func() {
			out, err := run("decode", "10800003", "--addr", "0x00100004")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("00100004:  10800003  beqz    $a0, 0x00100014"))
			Expect(out).To(ContainSubstring("flow: cond 0x00100014, 0x0010000c"))
			Expect(out).To(ContainSubstring("if "))
		})

		It("should dump the record", func() {
			out, err := run("decode", "0x24020005", "--dump")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("(insts.Instruction)"))
			Expect(out).NotTo(ContainSubstring("flow:"))
		})

		It("should reject malformed words", func() {
			_, err := run("decode", "xyz")
			Expect(err).To(MatchError(ContainSubstring("invalid instruction word")))
		})
	})

	Describe("schema", func() {
		It("should print the config JSON schema", func() {
			out, err := run("schema")
			Expect(err).NotTo(HaveOccurred())

			var schema map[string]any
			Expect(json.Unmarshal([]byte(out), &schema)).To(Succeed())
			Expect(out).To(ContainSubstring("hex_threshold"))
		})
	})
})
