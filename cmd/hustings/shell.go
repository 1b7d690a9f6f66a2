// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/hustings"
	"github.com/poiesic/hustings/color"
	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/export"
	"github.com/poiesic/hustings/present"
	"github.com/poiesic/hustings/search"
	"github.com/urfave/cli/v2"
)

const shellHelp = `Commands:
  add TERM[, TERM...]   add search terms
  remove TERM           remove a search term
  mode all|any          require all terms in a section, or any
  party NAME            toggle the party filter
  clear                 remove all terms and the party filter
  export [FILE]         write matches to CSV (default search_results.csv)
  show                  show the current results
  full                  toggle full section text
  terms                 list the current terms
  help                  show this help
  quit                  leave the shell`

// shell is an interactive search session. Every change to terms, mode or
// filter reruns the search and redraws the results.
type shell struct {
	ix       *hustings.Index
	session  *search.Session
	renderer *present.Renderer
	out      io.Writer
	last     *search.Result
}

func shellCommand(c *cli.Context) error {
	mode, err := core.ParseMatchMode(c.String("mode"))
	if err != nil {
		return err
	}
	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	session, err := ix.NewSession(search.WithMode(mode))
	if err != nil {
		return err
	}
	sh := &shell{
		ix:       ix,
		session:  session,
		renderer: newRenderer(c, ix, false),
		out:      c.App.Writer,
	}
	return sh.run(c.Context, c.App.Reader)
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(sh.out, "Type 'help' for commands.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		quit, err := sh.handle(ctx, scanner.Text())
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sh.renderer.Notice("Error: " + err.Error())
		}
		if quit {
			return nil
		}
	}
}

// handle executes one command line. It reports whether the shell should exit.
func (sh *shell) handle(ctx context.Context, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
		return false, nil
	case "add":
		if added := sh.session.AddTerms(arg); len(added) == 0 {
			return false, sh.renderer.Notice("No new terms.")
		}
		return false, sh.refresh(ctx)
	case "remove", "rm":
		if !sh.session.RemoveTerm(arg) {
			return false, sh.renderer.Notice(fmt.Sprintf("Not a search term: %q", arg))
		}
		return false, sh.refresh(ctx)
	case "mode":
		mode, err := core.ParseMatchMode(arg)
		if err != nil {
			return false, err
		}
		sh.session.SetMode(mode)
		return false, sh.refresh(ctx)
	case "party":
		if arg == "" {
			sh.session.ClearFilter()
		} else {
			sh.session.ToggleParty(sh.resolveParty(arg))
		}
		return false, sh.refresh(ctx)
	case "clear":
		sh.session.ClearTerms()
		sh.session.ClearFilter()
		return false, sh.refresh(ctx)
	case "export":
		if arg == "" {
			arg = export.DefaultFileName
		}
		return false, exportMatches(sh.renderer, sh.session, arg)
	case "show":
		return false, sh.refresh(ctx)
	case "full":
		sh.renderer.SetFullText(!sh.renderer.FullText())
		if sh.last == nil {
			return false, nil
		}
		return false, sh.renderer.Render(sh.last)
	case "terms":
		return false, sh.printTerms()
	default:
		return false, fmt.Errorf("unknown command %q, type 'help' for commands", cmd)
	}
}

func (sh *shell) printTerms() error {
	terms := sh.session.Terms()
	colors := make(map[string]color.Color, len(terms))
	for _, t := range terms {
		if c, ok := sh.session.TermColor(t); ok {
			colors[t] = c
		}
	}
	return sh.renderer.RenderTerms(terms, colors, sh.session.Mode())
}

func (sh *shell) refresh(ctx context.Context) error {
	res, err := sh.session.Run(ctx)
	if err != nil {
		return err
	}
	sh.last = res
	if err := sh.renderer.RenderTerms(res.Terms, res.Colors, res.Mode); err != nil {
		return err
	}
	return sh.renderer.Render(res)
}

// resolveParty matches name case-insensitively against known party names.
func (sh *shell) resolveParty(name string) string {
	var known []string
	if sh.last != nil {
		for _, pc := range sh.last.Breakdown {
			known = append(known, pc.Party)
		}
	}
	known = append(known, sh.ix.Parties().Parties()...)
	for _, p := range known {
		if strings.EqualFold(p, name) {
			return p
		}
	}
	return name
}
