package lawsite

import "github.com/a-h/templ"

// ViewFuncs holds the site's templ components. Every field is optional: when
// a view is nil the route answers with JSON instead of HTML.
type ViewFuncs struct {
	Home           func(page BlogPage, cfg SiteConfig) templ.Component
	Post           func(post BlogPost, cfg SiteConfig) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []BlogPost, queries []ContactQuery, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

func (v ViewFuncs) home(page BlogPage, cfg SiteConfig) templ.Component {
	if v.Home == nil {
		return nil
	}
	return v.Home(page, cfg)
}

func (v ViewFuncs) post(post BlogPost, cfg SiteConfig) templ.Component {
	if v.Post == nil {
		return nil
	}
	return v.Post(post, cfg)
}

func (v ViewFuncs) adminLogin(showError bool, csrf string) templ.Component {
	if v.AdminLogin == nil {
		return nil
	}
	return v.AdminLogin(showError, csrf)
}

func (v ViewFuncs) adminDashboard(posts []BlogPost, queries []ContactQuery, csrf string) templ.Component {
	if v.AdminDashboard == nil {
		return nil
	}
	return v.AdminDashboard(posts, queries, csrf)
}

func (v ViewFuncs) adminImages(images []Image, csrf string) templ.Component {
	if v.AdminImages == nil {
		return nil
	}
	return v.AdminImages(images, csrf)
}

func (v ViewFuncs) notFound() templ.Component {
	if v.NotFound == nil {
		return nil
	}
	return v.NotFound()
}

func (v ViewFuncs) serverError() templ.Component {
	if v.ServerError == nil {
		return nil
	}
	return v.ServerError()
}
