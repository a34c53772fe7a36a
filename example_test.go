package switchboard_test

import (
	"fmt"
	"strings"

	"github.com/switchboard-dev/switchboard"
)

type Mailer struct {
	From      string
	Transport string
}

func NewMailer(opts struct{ From, Transport string }) *Mailer {
	return &Mailer{From: opts.From, Transport: opts.Transport}
}

func Example() {
	c := switchboard.New()
	c.Register("mail.NewMailer", NewMailer)

	err := c.LoadReader(strings.NewReader(`
transport: smtp://localhost:25
mailer:
  ":": mail.NewMailer
  from: noreply@example.com
  transport: <transport>
`))
	if err != nil {
		panic(err)
	}

	mailer, err := switchboard.Resolve[*Mailer](c, "mailer")
	if err != nil {
		panic(err)
	}

	fmt.Println(mailer.From, mailer.Transport)
	// Output: noreply@example.com smtp://localhost:25
}

func ExampleContainer_Set() {
	c := switchboard.New()
	c.Set("greeting", "hello")
	c.Set("message", "<greeting>")

	fmt.Println(c.MustGet("message"))
	// Output: hello
}
