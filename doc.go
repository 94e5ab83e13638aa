/*
Package colorize is the core of a coloring book for young children: a theme is
picked, a line art picture is generated for it and the child colors it with a
handful of tools before saving the result.

The package provides the drawing surface and everything around it. The surface
follows the size of the container it is laid out in, taking the device scale
factor into account, and stretches its content when the container is resized.
The pen turns pointer and touch events into strokes, and the compositor
flattens the strokes over the line art into the exported picture.

The interactive window lives in the gui package and the command line
interface in cmd/colorize. In case you wish to drive a session from your own
environment, here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/c0dexio/Colorize"
	)

	func main() {
		s := colorize.NewSession(colorize.Options{})
		box := &colorize.StaticContainer{Box: colorize.Rect{W: 800, H: 600}, Scale: 2}
		s.BindSurface(box, colorize.Immediate)
		s.SetBackground("lineart.png")

		s.HandlePointer(colorize.PointerEvent{Kind: colorize.Press, Position: colorize.Point{X: 100, Y: 100}})
		s.HandlePointer(colorize.PointerEvent{Kind: colorize.Move, Position: colorize.Point{X: 300, Y: 200}})
		s.HandlePointer(colorize.PointerEvent{Kind: colorize.Release})

		name, err := s.ExportComposite(context.Background())
		if err != nil {
			fmt.Printf("Error exporting the picture: %s", err.Error())
		}
		fmt.Println(name)
	}
*/
package colorize
