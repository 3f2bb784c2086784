package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"abcip/internal/model"
	"abcip/internal/service"
)

// orderedResource describes the admin pages of one manually ordered entity:
// list, new, edit, save (with optional image), delete and move up/down.
type orderedResource[T any] struct {
	slug  string // URL segment under /admin and template folder under admin/
	label string
	svc   service.OrderedService[T]
	// blank is the record a "new" form starts from.
	blank func() *T
	// bind copies the submitted form into item. id is "" on create.
	bind func(c *fiber.Ctx, item *T, id string)
	// imageField names the file input, or "" when the entity has no image.
	imageField string
	log        logrus.FieldLogger
}

func (r orderedResource[T]) base() string { return "/admin/" + r.slug }

func (r orderedResource[T]) register(admin fiber.Router) {
	g := admin.Group("/" + r.slug)
	g.Get("/", r.list)
	g.Get("/new", r.newForm)
	g.Post("/", r.save)
	g.Get("/:id/edit", r.editForm)
	g.Post("/:id", r.save)
	g.Post("/:id/delete", r.delete)
	g.Post("/:id/move", r.move)
}

func (r orderedResource[T]) list(c *fiber.Ctx) error {
	items, err := r.svc.List(c.UserContext(), false)
	if err != nil {
		return err
	}
	return renderAdmin(c, "admin/"+r.slug+"/list", fiber.Map{"Title": r.label, "Items": items})
}

func (r orderedResource[T]) newForm(c *fiber.Ctx) error {
	return renderAdmin(c, "admin/"+r.slug+"/form", fiber.Map{
		"Title":  r.label,
		"Item":   r.blank(),
		"Action": r.base(),
	})
}

func (r orderedResource[T]) editForm(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	item, err := r.svc.Get(c.UserContext(), id)
	if err != nil {
		return pageError(err)
	}
	return renderAdmin(c, "admin/"+r.slug+"/form", fiber.Map{
		"Title":  r.label,
		"Item":   item,
		"Action": r.base() + "/" + id,
	})
}

func (r orderedResource[T]) save(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != "" {
		if _, ok := validID(c); !ok {
			return fiber.ErrNotFound
		}
	}

	var files formFiles
	defer files.Close()
	var image *service.Upload
	if r.imageField != "" {
		var err error
		if image, err = files.get(c, r.imageField); err != nil {
			return failToast(c, r.log, r.base(), "ler o arquivo enviado", err)
		}
	}

	item := r.blank()
	r.bind(c, item, id)
	if _, err := r.svc.Save(c.UserContext(), item, image); err != nil {
		return failToast(c, r.log, r.base(), "salvar", err)
	}
	return redirectToast(c, r.base(), toastSuccess, "Salvo com sucesso.")
}

func (r orderedResource[T]) delete(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	if err := r.svc.Delete(c.UserContext(), id); err != nil {
		return failToast(c, r.log, r.base(), "excluir", err)
	}
	return redirectToast(c, r.base(), toastSuccess, "Excluído.")
}

func (r orderedResource[T]) move(c *fiber.Ctx) error {
	id, ok := validID(c)
	if !ok {
		return fiber.ErrNotFound
	}
	if err := r.svc.Move(c.UserContext(), id, c.FormValue("direction")); err != nil {
		return failToast(c, r.log, r.base(), "reordenar", err)
	}
	return c.Redirect(r.base(), fiber.StatusSeeOther)
}

func bannerResource(svc service.BannerService, log logrus.FieldLogger) orderedResource[model.Banner] {
	return orderedResource[model.Banner]{
		slug: "banners", label: "Banners", svc: svc, imageField: "image", log: log,
		blank: func() *model.Banner { return &model.Banner{Active: true} },
		bind: func(c *fiber.Ctx, b *model.Banner, id string) {
			b.ID = id
			b.Title = formString(c, "title")
			b.Subtitle = formString(c, "subtitle")
			b.LinkURL = formString(c, "link_url")
			b.ButtonText = formString(c, "button_text")
			b.Active = formBool(c, "active")
		},
	}
}

func associateResource(svc service.AssociateService, log logrus.FieldLogger) orderedResource[model.Associate] {
	return orderedResource[model.Associate]{
		slug: "associates", label: "Associadas", svc: svc, imageField: "logo", log: log,
		blank: func() *model.Associate { return &model.Associate{Active: true} },
		bind: func(c *fiber.Ctx, a *model.Associate, id string) {
			a.ID = id
			a.Name = formString(c, "name")
			a.Website = formString(c, "website")
			a.Description = formString(c, "description")
			a.Active = formBool(c, "active")
		},
	}
}

func teamResource(svc service.TeamService, log logrus.FieldLogger) orderedResource[model.TeamMember] {
	return orderedResource[model.TeamMember]{
		slug: "team", label: "Equipe", svc: svc, imageField: "photo", log: log,
		blank: func() *model.TeamMember { return &model.TeamMember{Active: true, Group: model.TeamGroupTeam} },
		bind: func(c *fiber.Ctx, m *model.TeamMember, id string) {
			m.ID = id
			m.Name = formString(c, "name")
			m.Position = formString(c, "position")
			m.Bio = formString(c, "bio")
			m.LinkedInURL = formString(c, "linkedin_url")
			m.Group = model.TeamGroup(formString(c, "group"))
			m.Active = formBool(c, "active")
		},
	}
}

func committeeResource(svc service.CommitteeService, log logrus.FieldLogger) orderedResource[model.Committee] {
	return orderedResource[model.Committee]{
		slug: "committees", label: "Comitês", svc: svc, log: log,
		blank: func() *model.Committee { return &model.Committee{Active: true} },
		bind: func(c *fiber.Ctx, m *model.Committee, id string) {
			m.ID = id
			m.Name = formString(c, "name")
			m.Description = formString(c, "description")
			m.Coordinator = formString(c, "coordinator")
			m.Active = formBool(c, "active")
		},
	}
}

func videoResource(svc service.VideoService, log logrus.FieldLogger) orderedResource[model.Video] {
	return orderedResource[model.Video]{
		slug: "videos", label: "Vídeos", svc: svc, log: log,
		blank: func() *model.Video { return &model.Video{Active: true} },
		bind: func(c *fiber.Ctx, v *model.Video, id string) {
			v.ID = id
			v.Title = formString(c, "title")
			v.Description = formString(c, "description")
			v.YouTubeURL = formString(c, "youtube_url")
			v.Active = formBool(c, "active")
		},
	}
}
