package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"ssao-engine/ssao"
)

// PrintKernel implements the kernel command.
func PrintKernel(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sigma := float32(ctx.Float64("sigma"))
	if !(sigma > 0) {
		return fmt.Errorf("sigma must be positive, got %v", sigma)
	}
	kernel := ssao.NewBilateralKernel(sigma)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Offset", "Weight", "Normalized"})

	var sum float32
	for _, w := range kernel {
		sum += w
	}
	for i, w := range kernel {
		table.Append([]string{
			fmt.Sprintf("%d", i-ssao.KernelHalf),
			fmt.Sprintf("%.6f", w),
			fmt.Sprintf("%.6f", w/sum),
		})
	}
	table.SetFooter([]string{"", "SUM", fmt.Sprintf("%.6f", sum)})

	table.Render()
	logger.Noticef("bilateral kernel, sigma %v\n%s", sigma, buf.String())
	return nil
}
