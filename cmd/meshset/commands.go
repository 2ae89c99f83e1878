package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/vipss/meshset/bmap"
	"github.com/vipss/meshset/pool"
	"github.com/vipss/meshset/set"
	"github.com/vipss/meshset/univ"
)

func randCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "rand",
		Usage: "print draws from the default generator",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Value: 10,
				Usage: "number of draws",
			},
			&cli.StringFlag{
				Name:  "dist",
				Value: "int",
				Usage: "distribution to draw from (int|unif|gauss)",
			},
		},
		Action: func(ctx *cli.Context) error {
			var draw func() string
			switch dist := ctx.String("dist"); dist {
			case "int":
				draw = func() string { return strconv.FormatInt(int64(e.rand.Int()), 10) }
			case "unif":
				draw = func() string { return strconv.FormatFloat(e.rand.DUnif(), 'g', -1, 64) }
			case "gauss":
				draw = func() string { return strconv.FormatFloat(e.rand.DGauss(), 'g', -1, 64) }
			default:
				return errors.Newf("unknown distribution %q", dist)
			}
			count := ctx.Int("count")
			if count < 0 {
				return errors.Newf("count must not be negative, got %d", count)
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(ctx.App.Writer, draw())
			}
			return nil
		},
	}
}

func shuffleCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "shuffle",
		Usage:     "build a set of integers and print its members",
		ArgsUsage: "N...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "random",
				Usage: "print members in an order drawn from the default generator",
			},
		},
		Action: func(ctx *cli.Context) error {
			nodes := bmap.NewNodePool(e.poolConfig("shuffle"))
			defer nodes.Release()
			s := set.New[int, univ.Int[int]](nodes)
			for _, arg := range ctx.Args().Slice() {
				x, err := strconv.Atoi(arg)
				if err != nil {
					return errors.Wrapf(err, "bad set member %q", arg)
				}
				s.Add(x)
			}
			it := s.Iter()
			if ctx.Bool("random") {
				it = s.RandIter(e.rand)
			}
			var members []string
			for ; it.Valid(); it.Next() {
				members = append(members, strconv.Itoa(it.Item()))
			}
			fmt.Fprintln(ctx.App.Writer, strings.Join(members, " "))
			return nil
		},
	}
}

func poolCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "pool",
		Usage: "allocate and free sets through a set pool and print its statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "n",
				Value: 1000,
				Usage: "members added to each set",
			},
			&cli.IntFlag{
				Name:  "rounds",
				Value: 3,
				Usage: "number of allocate/free rounds",
			},
			&cli.IntFlag{
				Name:  "sets",
				Value: 8,
				Usage: "sets allocated in each round",
			},
		},
		Action: func(ctx *cli.Context) error {
			n, rounds, nsets := ctx.Int("n"), ctx.Int("rounds"), ctx.Int("sets")
			if n < 0 || rounds < 0 || nsets < 0 {
				return errors.New("n, rounds and sets must not be negative")
			}
			if n > 1<<24 {
				return errors.Newf("n %d is too large", n)
			}
			sets := set.NewPool[int, univ.Int[int]](e.poolConfig("sets"))
			defer sets.Release()
			refs := make([]pool.Ref, nsets)
			for round := 0; round < rounds; round++ {
				for i := range refs {
					r, s := sets.New()
					for j := 0; j < n; j++ {
						// Scatter the members so rounds exercise different chains.
						s.Add(e.rand.Intn(4 * (n + 1)))
					}
					refs[i] = r
				}
				setStats, nodeStats := sets.Stats()
				e.logger.Info("round allocated",
					"round", round,
					"sets", setStats.Live,
					"nodes", nodeStats.Live,
				)
				for _, r := range refs {
					if err := sets.Get(r).Check(); err != nil {
						return errors.Wrapf(err, "round %d", round)
					}
					sets.Delete(r)
				}
			}
			setStats, nodeStats := sets.Stats()
			renderStats(ctx, setStats, nodeStats)
			return nil
		},
	}
}

func renderStats(ctx *cli.Context, stats ...pool.Stats) {
	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Pool", "Elem size", "Chunks", "Capacity", "Live", "Free", "Unsliced"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, s := range stats {
		table.Append([]string{
			s.Name,
			strconv.FormatUint(uint64(s.ElemSize), 10),
			strconv.Itoa(s.Chunks),
			strconv.Itoa(s.Capacity),
			strconv.Itoa(s.Live),
			strconv.Itoa(s.Free),
			strconv.Itoa(s.Unsliced),
		})
	}
	table.Render()
}
