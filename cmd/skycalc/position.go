package main

import (
	"fmt"

	"github.com/ChristopherRabotin/sky"
	"github.com/spf13/cobra"
)

var positionCmd = &cobra.Command{
	Use:   "position <body>",
	Short: "Apparent place of a solar system body",
	Long: "Computes the apparent and J2000 places of a body, its horizontal coordinates for the observer, " +
		"its distance, angular size and magnitude. Jupiter and Saturn list their main satellites with --moons.",
	Args: cobra.ExactArgs(1),
	RunE: runPosition,
}

func init() {
	positionCmd.Flags().Bool("moons", false, "also list the satellites of Jupiter or Saturn")
}

func runPosition(cmd *cobra.Command, args []string) error {
	t, err := instant()
	if err != nil {
		return err
	}
	sys, err := sky.LoadSolarSystem()
	if err != nil {
		return err
	}
	b, err := newBody(sys, args[0])
	if err != nil {
		return err
	}
	num := sky.NewNumbers(sky.JD(t))
	where := site()
	if err := sys.Compute(b, num, where); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render(b.Name(), bodyRows(b)))
	fmt.Fprintln(out, siteLine(where, t))

	withMoons, _ := cmd.Flags().GetBool("moons")
	planet, isPlanet := b.(*sky.Planet)
	if !withMoons || !isPlanet {
		return nil
	}
	moons := moonsOf(b.Kind())
	if moons == nil {
		return nil
	}
	if err := moons.FindPosition(num, planet, sys.Sun()); err != nil {
		return err
	}
	moons.EquatorialToHorizontal(where.LST(num.JD()), where.Lat)
	rows := make([]row, moons.Count())
	for i := range rows {
		m := moons.Moon(i)
		x, y, _ := m.XYZ()
		side := "behind"
		if m.InFront() {
			side = "in front"
		}
		rows[i] = row{m.Name(), fmt.Sprintf("X %+7.2f Y %+7.2f  %s  alt %.2f°", x, y, side, m.Alt.Degrees())}
	}
	fmt.Fprintln(out, render("Satellites of "+b.Name(), rows))
	return nil
}
