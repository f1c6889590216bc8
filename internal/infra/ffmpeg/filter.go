package ffmpeg

import (
	"fmt"
	"strings"

	"github.com/Osmanoor/visper/internal/geometry"
)

// CropFilter renders the -vf expression for a resolved crop window. For
// a moving window the crop filter is preceded by sendcmd, which
// re-targets the crop origin at each sample time from cmdFile.
func CropFilter(crop *geometry.ResolvedCrop, cmdFile string) string {
	x, y := crop.At(0)
	cropExpr := fmt.Sprintf("crop=%d:%d:%d:%d", crop.W, crop.H, x, y)
	if crop.Static() {
		return cropExpr
	}
	return fmt.Sprintf("sendcmd=f=%s,%s", escapeFilterArg(cmdFile), cropExpr)
}

// SendCmdScript renders the sendcmd command file for a moving crop
// window. Sample frame indices are relative to the segment start, which
// matches the output timeline because seeking happens before decode.
func SendCmdScript(crop *geometry.ResolvedCrop, frameRate float64) []byte {
	var b strings.Builder
	for _, s := range crop.Samples {
		t := float64(s.Frame) / frameRate
		fmt.Fprintf(&b, "%.6f crop x %d, crop y %d;\n", t, s.X, s.Y)
	}
	return []byte(b.String())
}

// escapeFilterArg protects characters the filtergraph parser treats
// specially in option values (Windows drive colons, commas in paths).
func escapeFilterArg(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `:`, `\:`, `,`, `\,`, `'`, `\'`)
	return r.Replace(s)
}
