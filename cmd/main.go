package main

import (
	"github.com/immich-exporter/cmd/exporter"
)

func main() {
	exporter.Execute()
}
