package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const internalErrorBody = `{"error":"Erro interno"}` + "\n"

// WriteJSON serializa antes de escrever o status: se v não vira JSON
// (ex.: +Inf) a resposta sai 500, nunca 200 com corpo vazio.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("write_json_failed", "status", code, "err", err)
		code, b = http.StatusInternalServerError, []byte(internalErrorBody)
	} else {
		b = append(b, '\n')
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(b); err != nil {
		slog.Warn("write_json_short_write", "err", err)
	}
}

// WriteError responde no formato {"error": "..."} que o cliente exibe como veio.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]string{"error": msg})
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, msg)
}

/*
DecodeStrict decodifica JSON rejeitando chaves desconhecidas
e garantindo que exista exatamente UM objeto JSON.
*/
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	// lixo depois do objeto
	if dec.More() {
		return errors.New("unexpected additional JSON content")
	}
	return nil
}

// DecodeErrorMessage traduz o erro do DecodeStrict para a mensagem do corpo 400.
func DecodeErrorMessage(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, io.EOF):
		return "Corpo da requisição vazio"
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "JSON malformado"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Campo %q com tipo inválido", typeErr.Field)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return "Campo desconhecido: " + strings.Trim(field, `"`)
	default:
		return "JSON inválido"
	}
}
