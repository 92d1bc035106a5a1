package main

import (
	"fmt"
	"io"
)

var examples = []struct {
	section string
	items   [][2]string
}{
	{"Inputs", [][2]string{
		{"Grab all cities in North Carolina", "wordsmith -I usa-nc -c"},
		{"Grab roads and landmarks for Raleigh and Durham", "wordsmith -I usa-nc-raleigh,usa-nc-durham -r -l"},
		{"Grab every attribute for the 5 most populous countries", "wordsmith -I 5 -a"},
		{"Grab all of the roads for New England (U.S.)", "wordsmith -I newengland -r"},
		{"Show what data exists below Texas", "wordsmith -I usa-tx -C"},
	}},
	{"Output formatting", [][2]string{
		{"Grab all colleges for California, mangle the output, convert to lowercase", "wordsmith -I usa-ca -f -m -j"},
		{"Grab all roads for England with a minimum character length of 8", "wordsmith -I gbr-eng -r -k 8"},
		{"Grab everything for Italy, write to file named italy.txt", "wordsmith -I ita -a -o italy.txt"},
		{"Prepend area codes to every sports team in Ohio", "wordsmith -I usa-oh -t -P"},
	}},
	{"Usernames", [][2]string{
		{"Generate first.last usernames from the top 50 names in Spain", "wordsmith -I esp --fndln --name-depth 50"},
		{"Generate at most 1000 jsmith style usernames of 8 characters", "wordsmith -I usa --filn --truncate 8 --max-users 1000"},
	}},
	{"Web scraping", [][2]string{
		{"Scrape https://www.popped.io, mangle the output", "wordsmith -d https://www.popped.io -m"},
		{"Scrape every URL in urls.txt with CeWL, write to out.txt", "wordsmith -i urls.txt --cewl -m -o out.txt"},
	}},
}

func writeExamples(w io.Writer) {
	for _, s := range examples {
		fmt.Fprintf(w, "\n%s:\n", s.section)
		for _, ex := range s.items {
			fmt.Fprintf(w, "  %s\n      %s\n", ex[0], ex[1])
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inputs are location tokens (usa-nc-raleigh), region aliases from regions.csv")
	fmt.Fprintln(w, "(see -R), or a number selecting the most populous countries.")
}
