package api

import (
	"net/url"

	"github.com/terra-clan/extension-portal/internal/catalog"
)

// projectCriteria reads ?search=&area=&status=&course=&sort=
func projectCriteria(q url.Values) (catalog.ProjectCriteria, error) {
	return catalog.ParseProjectCriteria(q.Get("search"), q.Get("area"), q.Get("status"), q.Get("course"), q.Get("sort"))
}

// enrollmentCriteria reads ?search=&status=&year=
func enrollmentCriteria(q url.Values) (catalog.EnrollmentCriteria, error) {
	return catalog.ParseEnrollmentCriteria(q.Get("search"), q.Get("status"), q.Get("year"))
}

// certificateCriteria reads ?search=&year=
func certificateCriteria(q url.Values) (catalog.CertificateCriteria, error) {
	return catalog.ParseCertificateCriteria(q.Get("search"), q.Get("year"))
}
