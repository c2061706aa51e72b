package loader_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32sim/loader"
)

var _ = Describe("Image Loader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "image-loader-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		Context("with a valid image", func() {
			var imagePath string
			var image []byte

			BeforeEach(func() {
				imagePath = filepath.Join(tempDir, "test.bin")
				image = []byte{
					0x13, 0x05, 0xA0, 0x02, // addi a0, x0, 42
					0x00, 0x00, 0x00, 0x00, // halt word
				}
				Expect(os.WriteFile(imagePath, image, 0644)).To(Succeed())
			})

			It("should load without error", func() {
				prog, err := loader.Load(imagePath)

				Expect(err).NotTo(HaveOccurred())
				Expect(prog).NotTo(BeNil())
			})

			It("should return the bytes unchanged", func() {
				prog, err := loader.Load(imagePath)

				Expect(err).NotTo(HaveOccurred())
				Expect(prog.Data).To(Equal(image))
			})

			It("should place the image at the default base", func() {
				prog, err := loader.Load(imagePath)

				Expect(err).NotTo(HaveOccurred())
				Expect(prog.Base).To(Equal(loader.DefaultBase))
			})
		})

		Context("with an invalid file", func() {
			It("should return an error for a non-existent file", func() {
				_, err := loader.Load(filepath.Join(tempDir, "missing.bin"))

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("failed to read"))
			})

			It("should return an error for an empty file", func() {
				emptyPath := filepath.Join(tempDir, "empty.bin")
				Expect(os.WriteFile(emptyPath, []byte{}, 0644)).To(Succeed())

				_, err := loader.Load(emptyPath)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("empty image"))
			})
		})

		Context("with a partial trailing word", func() {
			It("should keep the odd bytes", func() {
				oddPath := filepath.Join(tempDir, "odd.bin")
				Expect(os.WriteFile(oddPath, []byte{0x01, 0x02, 0x03}, 0644)).To(Succeed())

				prog, err := loader.Load(oddPath)

				Expect(err).NotTo(HaveOccurred())
				Expect(prog.Data).To(HaveLen(3))
			})
		})
	})
})
