package main

import (
	"github.com/aldemarvin/extractor/internal/command"
	"github.com/aldemarvin/extractor/internal/command/export"
	"github.com/aldemarvin/extractor/internal/command/extraction"
	"github.com/aldemarvin/extractor/internal/command/page"
)

func main() {
	command.Main(
		"extractor",
		"Assemble OCR'd and translated pages into exportable documents",
		extraction.Command(),
		page.Command(),
		export.Command(),
	)
}
