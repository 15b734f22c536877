package productapi

import (
	"net/http"

	"github.com/TestingSDK2/produco-backend/api/common"
	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/app/product"
	"github.com/TestingSDK2/produco-backend/model"
)

func (a *api) ListProducts(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	products, err := a.productService.ListProducts(ctx.Context(), product.ListQuery{
		Search:   query.Get("q"),
		Category: query.Get("category"),
		Status:   query.Get("status"),
	})
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, nonNil(products))
}

func (a *api) ListUserProducts(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	products, err := a.productService.ListUserProducts(ctx.Context(), ctx.Vars["userId"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, nonNil(products))
}

func (a *api) GetProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	view, err := a.productService.GetProduct(ctx.Context(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, view)
}

func (a *api) ViewProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	view, err := a.productService.ViewProduct(ctx.Context(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, view)
}

func (a *api) CreateProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var input product.Input
	if err := common.DecodeJSON(r, &input); err != nil {
		return err
	}

	view, err := a.productService.CreateProduct(ctx.Context(), ctx.User, input)
	if err != nil {
		return err
	}
	ctx.Logger.WithField("product_id", view.ID.Hex()).Info("product created")
	return common.WriteJSON(w, http.StatusCreated, view)
}

func (a *api) UpdateProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var input product.Input
	if err := common.DecodeJSON(r, &input); err != nil {
		return err
	}

	view, err := a.productService.UpdateProduct(ctx.Context(), ctx.User, ctx.Vars["id"], input)
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, view)
}

func (a *api) PublishProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	var input product.Input
	if r.ContentLength > 0 {
		if err := common.DecodeJSON(r, &input); err != nil {
			return err
		}
	}

	view, err := a.productService.PublishProduct(ctx.Context(), ctx.User, ctx.Vars["id"], input)
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, view)
}

func (a *api) DeleteProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	if err := a.productService.DeleteProduct(ctx.Context(), ctx.User, ctx.Vars["id"]); err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]string{"message": "product removed"})
}

func (a *api) BlockProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	view, err := a.productService.BlockProduct(ctx.Context(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "product blocked", "product": view})
}

func (a *api) ApproveProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	view, err := a.productService.ApproveProduct(ctx.Context(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "product approved", "product": view})
}

func (a *api) LikeProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	view, err := a.productService.LikeProduct(ctx.Context(), ctx.User, ctx.GuestKey(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, view)
}

func (a *api) UnlikeProduct(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	view, err := a.productService.UnlikeProduct(ctx.Context(), ctx.User, ctx.GuestKey(), ctx.Vars["id"])
	if err != nil {
		return err
	}
	return common.WriteJSON(w, http.StatusOK, view)
}

func nonNil(products []model.ProductView) []model.ProductView {
	if products == nil {
		return []model.ProductView{}
	}
	return products
}
