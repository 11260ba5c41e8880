package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Vovarama1992/visus/internal/models"
)

// ErrQuit is returned by Exec for "quit" and "exit".
var ErrQuit = errors.New("quit")

const consoleHelp = `Команды:
  login <user> <password>   войти
  logout                    выйти
  kind <doctor|review|diagnostics|interior>
  list                      обновить список
  select <id>               открыть запись в форме
  new                       очистить форму
  set <field> <value…>      изменить поле формы
  show                      показать форму
  submit                    создать или обновить
  delete                    удалить запись targetId
  upload <file>             загрузить файл
  rmfile                    удалить файл записи
  requests [limit]          заявки на обратный звонок
  help, quit`

// Console is a line-oriented front end for the Controller.
type Console struct {
	ctrl *Controller
	out  io.Writer
	open func(name string) (io.ReadCloser, error)
}

func NewConsole(ctrl *Controller, out io.Writer) *Console {
	return &Console{
		ctrl: ctrl,
		out:  out,
		open: func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// Run reads commands from in until EOF, "quit" or ctx cancellation.
// Command failures are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	c.prompt()
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		err := c.Exec(ctx, sc.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if status := c.ctrl.Status(); err != nil && status != "" {
			fmt.Fprintln(c.out, status)
		} else if err != nil {
			fmt.Fprintln(c.out, "Ошибка:", err)
		}
		c.prompt()
	}
	return sc.Err()
}

func (c *Console) prompt() {
	fmt.Fprintf(c.out, "visus[%s]> ", c.ctrl.Kind())
}

// Exec runs one command line.
func (c *Console) Exec(ctx context.Context, line string) error {
	cmd, rest := splitCommand(line)
	args := strings.Fields(rest)

	switch cmd {
	case "":
		return nil
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
		return nil
	case "quit", "exit":
		return ErrQuit

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("%w: login <user> <password>", ErrValidation)
		}
		if err := c.ctrl.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
		c.printStatus()
		return c.list(ctx)
	case "logout":
		if err := c.ctrl.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Сессия завершена")
		return nil

	case "kind":
		if len(args) != 1 {
			return fmt.Errorf("%w: kind <doctor|review|diagnostics|interior>", ErrValidation)
		}
		kind, err := ParseKind(args[0])
		if err != nil {
			return err
		}
		c.ctrl.SwitchKind(kind)
		fmt.Fprintln(c.out, kind.Label())
		if !c.ctrl.session.Authenticated() {
			return nil
		}
		return c.list(ctx)
	case "list":
		return c.list(ctx)
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("%w: select <id>", ErrValidation)
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: id must be a number", ErrValidation)
		}
		if err := c.ctrl.Select(id); err != nil {
			return err
		}
		c.renderForm()
		return nil
	case "new":
		c.ctrl.NewRecord()
		c.renderForm()
		return nil
	case "set":
		name, value, _ := strings.Cut(rest, " ")
		field, err := ParseField(name)
		if err != nil {
			return err
		}
		return c.ctrl.SetField(field, strings.TrimSpace(value))
	case "show":
		c.renderForm()
		return nil

	case "submit":
		if err := c.ctrl.Submit(ctx); err != nil {
			return err
		}
		c.printStatus()
		c.renderList()
		return nil
	case "delete":
		if err := c.ctrl.DeleteRecord(ctx); err != nil {
			return err
		}
		c.printStatus()
		c.renderList()
		return nil
	case "upload":
		if rest == "" {
			return c.ctrl.Upload(ctx, "", nil)
		}
		f, err := c.open(rest)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		defer f.Close()
		if err := c.ctrl.Upload(ctx, filepath.Base(rest), f); err != nil {
			return err
		}
		c.printStatus()
		c.renderForm()
		return nil
	case "rmfile":
		if err := c.ctrl.DeleteFile(ctx); err != nil {
			return err
		}
		c.printStatus()
		return nil

	case "requests":
		limit := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: limit must be a number", ErrValidation)
			}
			limit = n
		}
		list, err := c.ctrl.Requests(ctx, limit)
		if err != nil {
			return err
		}
		c.renderRequests(list)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q, try help", ErrValidation, cmd)
}

func (c *Console) list(ctx context.Context) error {
	if err := c.ctrl.List(ctx); err != nil {
		return err
	}
	c.renderList()
	return nil
}

func (c *Console) printStatus() {
	if s := c.ctrl.Status(); s != "" {
		fmt.Fprintln(c.out, s)
	}
}

func (c *Console) renderList() {
	v := c.ctrl.Snapshot()
	if len(v.Records) == 0 {
		fmt.Fprintln(c.out, "Нет записей")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tНазвание\t\tИзображение")
	for _, r := range v.Records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID(), r.Title(), r.Subtitle(), c.ctrl.ResolvePreview(r.ImagePath()))
	}
	_ = tw.Flush()
}

func (c *Console) renderForm() {
	v := c.ctrl.Snapshot()
	mode := "создание"
	if v.Editing {
		mode = "редактирование"
	}
	fmt.Fprintf(c.out, "%s (%s)\n", v.Kind.Label(), mode)

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\n", FieldTargetID, v.Form[FieldTargetID])
	for _, f := range FieldsOf(v.Kind) {
		fmt.Fprintf(tw, "  %s\t%s\n", f, v.Form[f])
	}
	if v.PreviewURL != "" {
		fmt.Fprintf(tw, "  превью\t%s\n", v.PreviewURL)
	}
	_ = tw.Flush()
}

func (c *Console) renderRequests(list []models.CallbackRequest) {
	if len(list) == 0 {
		fmt.Fprintln(c.out, "Заявок нет")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tИмя\tТелефон\tСтатус\tСоздана")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Phone, r.Status, r.CreatedAt.Local().Format("02.01.2006 15:04"))
	}
	_ = tw.Flush()
}

// splitCommand cuts the first word off line.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}
