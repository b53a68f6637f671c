package console_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/uber-go/tally/v4"

	"github.com/soamaka/AirBnB-clone/internal/adapters/console"
	"github.com/soamaka/AirBnB-clone/internal/application"
	"github.com/soamaka/AirBnB-clone/internal/config"
	"github.com/soamaka/AirBnB-clone/internal/domain"
	"github.com/soamaka/AirBnB-clone/internal/storage"
)

var _ = Describe("Console", func() {
	backends := map[string]func(dir string) *config.Config{
		"file": func(dir string) *config.Config {
			return &config.Config{TypeStorage: config.StorageFile, FilePath: filepath.Join(dir, "file.json"), LogLevel: "warn"}
		},
		"sqlite": func(dir string) *config.Config {
			return &config.Config{
				TypeStorage: config.StorageDB,
				DBDialect:   "sqlite",
				SQLitePath:  filepath.Join(dir, "hbnb.db"),
				Env:         "test",
				LogLevel:    "warn",
			}
		},
	}

	for name, mk := range backends {
		Context("with the "+name+" backend", func() {
			var (
				ctx   context.Context
				store domain.Storage
				svc   *application.Service
			)

			// run feeds lines to a fresh non-interactive shell and returns
			// its output lines.
			run := func(lines ...string) []string {
				var out bytes.Buffer
				sh := console.New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, false, zerolog.Nop())
				Expect(sh.Run(ctx)).To(Succeed())
				text := strings.TrimRight(out.String(), "\n")
				if text == "" {
					return nil
				}
				return strings.Split(text, "\n")
			}

			createUser := func(attrs string) string {
				out := run("create User " + attrs)
				Expect(out).To(HaveLen(1))
				return out[0]
			}

			// createPlace creates the owners a place refers to before the
			// place itself, since the relational backend enforces them.
			createPlace := func(attrs string) string {
				user := createUser(`email="owner@b.com" password="x"`)
				state := run(`create State name="California"`)[0]
				city := run(`create City name="San_Francisco" state_id="` + state + `"`)[0]
				out := run(`create Place city_id="` + city + `" user_id="` + user + `" ` + attrs)
				Expect(out).To(HaveLen(1))
				return out[0]
			}

			BeforeEach(func() {
				ctx = context.Background()
				cfg := mk(GinkgoT().TempDir())
				Expect(cfg.ResolveDefaults()).To(Succeed())

				var err error
				store, err = storage.Open(ctx, cfg, zerolog.Nop(), tally.NoopScope)
				Expect(err).NotTo(HaveOccurred())
				svc = application.NewService(store)
			})

			AfterEach(func() {
				Expect(store.Close(ctx)).To(Succeed())
			})

			It("creates a user and shows it", func() {
				id := createUser(`email="a@b.com" password="x"`)
				Expect(id).To(MatchRegexp(`^[0-9a-f-]{36}$`))

				out := run("show User " + id)
				Expect(out).To(HaveLen(1))
				Expect(out[0]).To(HavePrefix("[User] (" + id + ")"))
				Expect(out[0]).To(ContainSubstring("'email': 'a@b.com'"))
				Expect(out[0]).To(ContainSubstring("'password': 'x'"))
			})

			It("updates an attribute", func() {
				id := createUser(`email="a@b.com" password="x"`)

				Expect(run(`update User `+id+` first_name "Bob"`, "show User "+id)).To(ConsistOf(
					ContainSubstring("'first_name': 'Bob'"),
				))
			})

			It("destroys an object", func() {
				id := createUser(`email="a@b.com" password="x"`)

				Expect(run("destroy User "+id, "show User "+id)).To(Equal([]string{"** no instance found **"}))
			})

			It("applies a mapping given in dot syntax entry by entry", func() {
				id := createUser(`email="a@b.com" password="x"`)

				Expect(run(`User.update("` + id + `", {'first_name': 'Ann', 'last_name': 'Lee'})`)).To(BeEmpty())
				viaMapping := run("show User " + id)[0]

				other := createUser(`email="a@b.com" password="x"`)
				run(`update User `+other+` first_name "Ann"`, `update User `+other+` last_name "Lee"`)
				viaPairs := run("show User " + other)[0]

				for _, attr := range []string{"'first_name': 'Ann'", "'last_name': 'Lee'"} {
					Expect(viaMapping).To(ContainSubstring(attr))
					Expect(viaPairs).To(ContainSubstring(attr))
				}
			})

			It("counts what remains", func() {
				ids := []string{createUser(`email="1"`), createUser(`email="2"`), createUser(`email="3"`)}
				run("destroy User " + ids[1])

				Expect(run("count User")).To(Equal([]string{"2"}))
				Expect(run("User.count()")).To(Equal([]string{"2"}))
				Expect(run("count Place")).To(Equal([]string{"0"}))
			})

			It("lists objects with all", func() {
				Expect(run("all")).To(Equal([]string{"[]"}))

				id := createUser(`email="a@b.com"`)
				createState := run(`create State name="California"`)
				Expect(createState).To(HaveLen(1))

				out := run("all User")
				Expect(out).To(HaveLen(1))
				Expect(out[0]).To(HavePrefix(`["[User] (` + id + `)`))
				Expect(out[0]).To(HaveSuffix(`"]`))
				Expect(out[0]).NotTo(ContainSubstring("[State]"))

				Expect(run("User.all()")).To(Equal(out))
				Expect(run("all")[0]).To(ContainSubstring("[State]"))
				Expect(run("all Car")).To(Equal([]string{"** class doesn't exist **"}))
			})

			It("stores typed create parameters", func() {
				id := createPlace(`name="My_little_house" number_rooms=4 latitude=37.77 junk=abc`)

				shown := run(`Place.show("` + id + `")`)
				Expect(shown).To(HaveLen(1))
				Expect(shown[0]).To(ContainSubstring("'name': 'My little house'"))
				Expect(shown[0]).To(ContainSubstring("'number_rooms': 4"))
				Expect(shown[0]).To(ContainSubstring("'latitude': 37.77"))
				Expect(shown[0]).NotTo(ContainSubstring("junk"))
			})

			It("coerces known numeric attributes on update", func() {
				id := createPlace(`name="Loft"`)

				Expect(run(`update Place `+id+` number_rooms "3"`, `update Place `+id+` price_by_night lots`)).To(Equal(
					[]string{"** value is not a number **"},
				))
				Expect(run("show Place " + id)[0]).To(ContainSubstring("'number_rooms': 3"))
			})

			It("refuses numbers the backends cannot store and keeps running", func() {
				id := createPlace(`name="Loft"`)

				Expect(run(
					`update Place `+id+` latitude nan`,
					`update Place `+id+` latitude inf`,
					`update Place `+id+` longitude -inf`,
					`update Place `+id+` {'number_rooms': 1e300}`,
					`Place.update("`+id+`", {'max_guest': -1e300})`,
					"count Place",
				)).To(Equal([]string{
					"** value is not a number **",
					"** value is not a number **",
					"** value is not a number **",
					"** value is not a number **",
					"** value is not a number **",
					"1",
				}))

				shown := run("show Place " + id)[0]
				Expect(shown).NotTo(ContainSubstring("latitude"))
				Expect(shown).NotTo(ContainSubstring("number_rooms"))
				Expect(run(`update Place `+id+` latitude 12.5`, "show Place "+id)[0]).To(ContainSubstring("'latitude': 12.5"))
			})

			It("reads lines longer than a megabyte", func() {
				name := strings.Repeat("a", 2<<20)
				out := run(`create State name="`+name+`"`, "count State")
				Expect(out).To(HaveLen(2))
				Expect(out[1]).To(Equal("1"))
				Expect(run("show State " + out[0])[0]).To(ContainSubstring(name))
			})

			DescribeTable("reports input errors",
				func(line, want string) {
					Expect(run(line)).To(Equal([]string{want}))
				},
				Entry("create without class", "create", "** class name missing **"),
				Entry("create unknown class", "create MyModel", "** class doesn't exist **"),
				Entry("show without class", "show", "** class name missing **"),
				Entry("show unknown class", "show BaseModel 1", "** class doesn't exist **"),
				Entry("show without id", "show User", "** instance id missing **"),
				Entry("show unknown id", "show User 1234", "** no instance found **"),
				Entry("destroy unknown id", "destroy User 1234", "** no instance found **"),
				Entry("update unknown id", "update User 1234 name x", "** no instance found **"),
				Entry("dot show unknown id", `User.show("1234")`, "** no instance found **"),
				Entry("unknown command", "fly User", "*** Unknown syntax: fly User"),
				Entry("unknown dot command", "User.fly()", "*** Unknown syntax: User.fly()"),
			)

			It("reports missing update arguments in order", func() {
				id := createUser(`email="a@b.com"`)

				Expect(run("update User " + id)).To(Equal([]string{"** attribute name missing **"}))
				Expect(run("update User " + id + " first_name")).To(Equal([]string{"** value missing **"}))
			})

			It("fails hard on non-text mapping keys", func() {
				id := createUser(`email="a@b.com"`)

				var out bytes.Buffer
				sh := console.New(svc, strings.NewReader(`update User `+id+` {1: 'x'}`+"\n"), &out, false, zerolog.Nop())
				err := sh.Run(ctx)
				Expect(err).To(MatchError(ContainSubstring(domain.ErrTypeKind.Error())))
			})

			It("stops at quit and ignores blank lines", func() {
				Expect(run("", "   ", "quit", "create User")).To(BeEmpty())
				Expect(run("count User")).To(Equal([]string{"0"}))
			})

			It("stops at EOF", func() {
				Expect(run("EOF", "create User")).To(BeEmpty())
			})
		})
	}

	It("prints a prompt only when interactive", func() {
		store, err := storage.Open(context.Background(), &config.Config{
			TypeStorage: config.StorageFile,
			FilePath:    filepath.Join(GinkgoT().TempDir(), "file.json"),
		}, zerolog.Nop(), tally.NoopScope)
		Expect(err).NotTo(HaveOccurred())
		svc := application.NewService(store)

		var out bytes.Buffer
		sh := console.New(svc, strings.NewReader("count User\n"), &out, true, zerolog.Nop())
		Expect(sh.Run(context.Background())).To(Succeed())
		Expect(out.String()).To(Equal(console.Prompt + "0\n" + console.Prompt + "\n"))
	})

	It("writes no prompt for piped input", func() {
		store, err := storage.Open(context.Background(), &config.Config{
			TypeStorage: config.StorageFile,
			FilePath:    filepath.Join(GinkgoT().TempDir(), "file.json"),
		}, zerolog.Nop(), tally.NoopScope)
		Expect(err).NotTo(HaveOccurred())

		var out bytes.Buffer
		sh := console.New(application.NewService(store), strings.NewReader("count User\ncount State"), &out, false, zerolog.Nop())
		Expect(sh.Run(context.Background())).To(Succeed())
		Expect(out.String()).To(Equal("0\n0\n"))
	})
})
