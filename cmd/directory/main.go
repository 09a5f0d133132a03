// directory is a terminal view over the employee directory: it fetches the
// record set through the API client and renders the same derived view the
// browser list shows.
package main

import (
	"flag"
	"fmt"
	"os"
	"staffdir/internal/client"
	"staffdir/internal/listview"
	"staffdir/internal/logger"
	"text/tabwriter"
)

func main() {
	log := logger.New("directory")

	server := flag.String("server", "http://localhost:8080", "directory server base URL")
	query := flag.String("query", "", "free-text search query")
	sortKey := flag.String("sort", string(listview.SortName), "sort column: uniqueId, name, email, createdAt")
	direction := flag.String("direction", string(listview.Ascending), "sort direction: asc or desc")
	deleteID := flag.String("delete", "", "delete the employee with this id and exit")
	flag.Parse()

	api := client.New(*server)

	if *deleteID != "" {
		if err := api.DeleteEmployee(*deleteID); err != nil {
			log.Er("failed to delete employee", err, "id", *deleteID)
			os.Exit(1)
		}
		fmt.Println("deleted", *deleteID)
		return
	}

	employees, err := api.FetchEmployees()
	if err != nil {
		log.Er("failed to fetch employees", err)
		os.Exit(1)
	}

	state := listview.ViewState{
		Query:         *query,
		SortKey:       listview.SortKey(*sortKey),
		SortDirection: listview.SortDirection(*direction),
	}
	view := listview.Derive(employees, state)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UNIQUE ID\tNAME\tEMAIL\tMOBILE\tDESIGNATION\tGENDER\tCOURSE\tCREATED")
	for _, e := range view {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.UniqueID, e.Name, e.Email, e.MobileNo,
			e.Designation, e.Gender, e.Course,
			listview.RenderCreatedAt(e.CreatedAt))
	}
	w.Flush()
	fmt.Printf("Total Count: %d\n", len(view))
}
