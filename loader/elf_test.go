package loader_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eelift/loader"
)

var code = []byte{
	0x05, 0x00, 0x02, 0x24, // addiu $v0, $zero, 5
	0x08, 0x00, 0xe0, 0x03, // jr $ra
	0x00, 0x00, 0x00, 0x00, // nop
}

var _ = Describe("ELF Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "elf-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		Context("with a valid EE executable", func() {
			var elfPath string

			BeforeEach(func() {
				elfPath = filepath.Join(tempDir, "test.elf")
				eeImage(0x00100000, code).write(elfPath)
			})

			It("should load without error", func() {
				prog, err := loader.Load(elfPath)
				Expect(err).NotTo(HaveOccurred())
				Expect(prog).NotTo(BeNil())
			})

			It("should extract the entry point and flags", func() {
				prog, err := loader.Load(elfPath)
				Expect(err).NotTo(HaveOccurred())
				Expect(prog.EntryPoint).To(Equal(uint32(0x00100000)))
				Expect(prog.Flags & loader.FlagR5900).NotTo(BeZero())
			})

			It("should load the code segment", func() {
				prog, err := loader.Load(elfPath)
				Expect(err).NotTo(HaveOccurred())
				Expect(prog.Segments).To(HaveLen(1))

				seg := prog.Segments[0]
				Expect(seg.VirtAddr).To(Equal(uint32(0x00100000)))
				Expect(seg.Data).To(Equal(code))
				Expect(seg.Flags).To(Equal(loader.SegmentFlagExecute | loader.SegmentFlagRead))
				Expect(prog.Executable()).To(HaveLen(1))
			})

			It("should read little-endian words", func() {
				prog, err := loader.Load(elfPath)
				Expect(err).NotTo(HaveOccurred())

				w, err := prog.ReadU32(0x00100004)
				Expect(err).NotTo(HaveOccurred())
				Expect(w).To(Equal(uint32(0x03e00008)))
			})

			It("should report unmapped reads", func() {
				prog, err := loader.Load(elfPath)
				Expect(err).NotTo(HaveOccurred())

				_, err = prog.ReadU32(0x00200000)
				Expect(errors.Is(err, loader.ErrUnmapped)).To(BeTrue())

				_, err = prog.ReadU32(0x0010000A)
				Expect(errors.Is(err, loader.ErrUnmapped)).To(BeTrue())
			})
		})

		Context("with a BSS tail", func() {
			It("should read past the file image as zeros", func() {
				img := eeImage(0x00100000, code)
				img.memSize = 0x100
				path := filepath.Join(tempDir, "bss.elf")
				img.write(path)

				prog, err := loader.Load(path)
				Expect(err).NotTo(HaveOccurred())

				w, err := prog.ReadU32(0x00100040)
				Expect(err).NotTo(HaveOccurred())
				Expect(w).To(BeZero())
			})
		})

		Context("with a symbol table", func() {
			var prog *loader.Program

			BeforeEach(func() {
				img := eeImage(0x00100000, code)
				img.symbols = []testSymbol{
					{name: "_Z3fooi", value: 0x00100000, size: 12, info: 0x12},
					{name: "counter", value: 0x00200000, size: 4, info: 0x11},
					{name: "main", value: 0x00100008, size: 4, info: 0x12},
					{name: "section", value: 0x00100000, info: 0x03},
				}
				var err error
				prog, err = loader.Parse(bytes.NewReader(img.bytes()), loader.DefaultOptions())
				Expect(err).NotTo(HaveOccurred())
			})

			It("should keep function and object symbols in address order", func() {
				Expect(prog.Symbols).To(HaveLen(3))
				Expect(prog.Symbols[0].Addr).To(Equal(uint32(0x00100000)))
				Expect(prog.Symbols[1].Raw).To(Equal("main"))
				Expect(prog.Symbols[2].Kind).To(Equal(loader.SymbolObject))
			})

			It("should demangle names", func() {
				sym, ok := prog.SymbolAt(0x00100000)
				Expect(ok).To(BeTrue())
				Expect(sym.Name).To(Equal("foo(int)"))
				Expect(sym.Raw).To(Equal("_Z3fooi"))
			})

			It("should list functions only", func() {
				fns := prog.Functions()
				Expect(fns).To(HaveLen(2))
				Expect(fns[1].Name).To(Equal("main"))
			})

			It("should miss addresses without a symbol", func() {
				_, ok := prog.SymbolAt(0x00100004)
				Expect(ok).To(BeFalse())
			})
		})

		Context("with an invalid file", func() {
			It("should return error for non-existent file", func() {
				_, err := loader.Load("/nonexistent/path/to/file.elf")
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("failed to open"))
			})

			It("should return error for non-ELF file", func() {
				notElfPath := filepath.Join(tempDir, "not-elf.bin")
				err := os.WriteFile(notElfPath, []byte("not an elf file"), 0o644)
				Expect(err).NotTo(HaveOccurred())

				_, err = loader.Load(notElfPath)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("ELF"))
			})

			It("should return error for empty file", func() {
				emptyPath := filepath.Join(tempDir, "empty.elf")
				err := os.WriteFile(emptyPath, []byte{}, 0o644)
				Expect(err).NotTo(HaveOccurred())

				_, err = loader.Load(emptyPath)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("with a non-EE ELF", func() {
			It("should reject other machines", func() {
				img := eeImage(0x00100000, code)
				img.machine = em386
				_, err := loader.Parse(bytes.NewReader(img.bytes()), loader.DefaultOptions())
				Expect(errors.Is(err, loader.ErrNotEE)).To(BeTrue())
			})

			It("should reject MIPS files without the R5900 flag", func() {
				img := eeImage(0x00100000, code)
				img.flags = 0
				_, err := loader.Parse(bytes.NewReader(img.bytes()), loader.DefaultOptions())
				Expect(errors.Is(err, loader.ErrNotEE)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("R5900"))
			})

			It("should accept them when the flag is not required", func() {
				img := eeImage(0x00100000, code)
				img.flags = 0
				prog, err := loader.Parse(bytes.NewReader(img.bytes()), loader.Options{})
				Expect(err).NotTo(HaveOccurred())
				Expect(prog.Flags).To(BeZero())
			})
		})
	})
})
