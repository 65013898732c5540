package sink_test

import (
	"fmt"

	"github.com/matzehuels/mondrian/pkg/partition"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

func ExampleRenderSVG() {
	e, _ := partition.NewEngine(partition.Rect{Width: 100, Height: 50, Fill: partition.Blue},
		partition.WithOutline(false))
	e.SplitOne(0, partition.Vertical, partition.TwoWay)

	fmt.Print(string(sink.RenderSVG(e.State(), sink.WithTitle("two"))))
	// Output:
	// <svg xmlns="http://www.w3.org/2000/svg" version="1.1" baseProfile="full" viewBox="0 0 100 50" width="100" height="50">
	//   <title>two</title>
	//   <rect id="tile-0x0" x="0" y="0" width="50" height="50" fill="#0000ff" stroke="none"/>
	//   <rect id="tile-50x0" x="50" y="0" width="50" height="50" fill="#0000ff" stroke="none"/>
	// </svg>
}
